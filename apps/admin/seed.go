package main

import (
	"errors"
	"fmt"

	"github.com/trezcool/mtihani/core/catalog"
)

var errNotEmpty = errors.New("catalog is not empty; refusing to seed")

// seed loads a small sample catalog so the API has something to serve.
// It only runs against an empty store.
func (cli *commandLine) seed() error {
	if len(cli.catalogSvc.Categories()) > 0 {
		return errNotEmpty
	}

	cat, err := cli.catalogSvc.CreateCategory(catalog.NewCategory{Name: "Commerce"})
	if err != nil {
		return err
	}
	sub, err := cli.catalogSvc.CreateSubcategory(catalog.NewSubcategory{CategoryID: cat.ID, Name: "CA Foundation"})
	if err != nil {
		return err
	}
	subj, err := cli.catalogSvc.CreateSubject(catalog.NewSubject{SubcategoryID: sub.ID, Name: "Accounts"})
	if err != nil {
		return err
	}
	chap, err := cli.catalogSvc.CreateChapter(catalog.NewChapter{SubjectID: subj.ID, Name: "Introduction to Accounting"})
	if err != nil {
		return err
	}

	mcqs := []catalog.NewMCQ{
		{
			Question:        "Which of these is a liability?",
			Options:         []string{"Cash", "Creditors", "Debtors", "Stock"},
			CorrectAnswer:   intPtr(1),
			Marks:           intPtr(2),
			NegativeMarking: true,
			CategoryID:      cat.ID,
			SubcategoryID:   sub.ID,
			SubjectID:       subj.ID,
			ChapterID:       chap.ID,
		},
		{
			Question:      "The accounting equation is Assets = Liabilities + ?",
			Options:       []string{"Income", "Expenses", "Capital", "Drawings"},
			CorrectAnswer: intPtr(2),
			Marks:         intPtr(4),
			CategoryID:    cat.ID,
			SubcategoryID: sub.ID,
			SubjectID:     subj.ID,
			ChapterID:     chap.ID,
		},
	}
	for _, nm := range mcqs {
		if _, err := cli.catalogSvc.CreateMCQ(nm); err != nil {
			return err
		}
	}

	fmt.Printf("seeded: 1 category, 1 subcategory, 1 subject, 1 chapter, %d questions\n", len(mcqs))
	return nil
}

func intPtr(i int) *int { return &i }
