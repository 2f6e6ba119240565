package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/trezcool/mtihani/core/catalog"
	"github.com/trezcool/mtihani/storage/jsondb"
)

func setup(t *testing.T) *commandLine {
	db, err := jsondb.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("jsondb.Open() failed, %v", err)
	}
	svc, err := catalog.NewService(db, nil)
	if err != nil {
		t.Fatalf("catalog.NewService() failed, %v", err)
	}
	return &commandLine{catalogSvc: svc}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addstudent: no args", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "addstudent: missing course", args: []string{"addstudent", "-name", "Jo", "-email", "jo@test.cd"}, wantErr: errHelp},
		{name: "addstudent", args: []string{"addstudent", "-name", "Jo", "-email", "jo@test.cd", "-course", "CA Foundation"}},
		{name: "seed", args: []string{"seed"}},
		{name: "seed: already seeded", args: []string{"seed"}, wantErr: errNotEmpty},
		{name: "showdoc", args: []string{"showdoc"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if got := len(cli.catalogSvc.Students()); got != 1 {
		t.Errorf("expected 1 student, got %d", got)
	}
	if got := len(cli.catalogSvc.MCQs()); got != 2 {
		t.Errorf("expected 2 seeded questions, got %d", got)
	}
}

func Test_commandLine_showDoc(t *testing.T) {
	cli := setup(t)

	if err := cli.seed(); err != nil {
		t.Fatalf("cli.seed() failed, %v", err)
	}

	var buf bytes.Buffer
	if err := cli.showDoc(&buf); err != nil {
		t.Fatalf("cli.showDoc() failed, %v", err)
	}

	var doc catalog.Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("showDoc output is not valid JSON, %v", err)
	}
	if len(doc.Categories) != 1 {
		t.Errorf("expected 1 category, got %d", len(doc.Categories))
	}
	if len(doc.Chapters) != 1 {
		t.Errorf("expected 1 chapter, got %d", len(doc.Chapters))
	}
}
