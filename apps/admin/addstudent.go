package main

import (
	"fmt"

	"github.com/trezcool/mtihani/core/catalog"
)

// addStudent registers a catalog.Student and prints the generated id.
func (cli *commandLine) addStudent(name, email, course string) error {
	stu, err := cli.catalogSvc.CreateStudent(catalog.NewStudent{
		Name:   name,
		Email:  email,
		Course: course,
	})
	if err != nil {
		return err
	}
	fmt.Printf("student created: %s (%s)\n", stu.ID, stu.Email)
	return nil
}
