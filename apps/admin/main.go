package main

import (
	"log"
	"os"

	"github.com/trezcool/mtihani/core"
	"github.com/trezcool/mtihani/core/catalog"
	emailsvc "github.com/trezcool/mtihani/services/email"
	"github.com/trezcool/mtihani/storage/jsondb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the document store
	db, err := jsondb.Open(conf.Database.Path)
	errAndDie(err)

	catalogSvc, err := catalog.NewService(db, emailsvc.NewConsoleService(conf))
	errAndDie(err)

	// start CLI
	cli := commandLine{catalogSvc: catalogSvc}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
