package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/trezcool/mtihani/core/catalog"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	catalogSvc *catalog.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed - load a sample catalog into an empty store")
	fmt.Println("  addstudent -name NAME -email EMAIL -course COURSE - register a student")
	fmt.Println("  showdoc - print the stored document as JSON")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email address.")
	addStudentCourse := addStudentCmd.String("course", "", "The course the student is enrolled in.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" || *addStudentEmail == "" || *addStudentCourse == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentEmail, *addStudentCourse)
	case "showdoc":
		return cli.showDoc(os.Stdout)
	default:
		cli.printUsage()
		return errHelp
	}
}
