package main

import (
	"encoding/json"
	"io"

	"github.com/trezcool/mtihani/core/catalog"
)

// showDoc rebuilds the document from the service's accessors and dumps it
// as indented JSON.
func (cli *commandLine) showDoc(w io.Writer) error {
	doc := catalog.Document{
		Categories:    cli.catalogSvc.Categories(),
		Subcategories: cli.catalogSvc.Subcategories(),
		Subjects:      cli.catalogSvc.Subjects(),
		Chapters:      cli.catalogSvc.Chapters(),
		MCQs:          cli.catalogSvc.MCQs(),
		Students:      cli.catalogSvc.Students(),
		Settings:      cli.catalogSvc.Settings(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
