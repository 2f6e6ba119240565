package catalog

import (
	"time"

	"github.com/trezcool/mtihani/core"
)

// Hierarchy: Category → Subcategory → Subject → Chapter. Names are unique
// (case-insensitively) among siblings sharing the same parent; ids are opaque
// strings generated at creation time and never reused.

type (
	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Subcategory struct {
		ID         string `json:"id"`
		CategoryID string `json:"categoryId"`
		Name       string `json:"name"`
	}

	Subject struct {
		ID            string `json:"id"`
		SubcategoryID string `json:"subcategoryId"`
		Name          string `json:"name"`
	}

	Chapter struct {
		ID        string `json:"id"`
		SubjectID string `json:"subjectId"`
		Name      string `json:"name"`
	}

	MCQ struct {
		ID              string   `json:"id"`
		Question        string   `json:"question"`
		Options         []string `json:"options"`
		CorrectAnswer   int      `json:"correctAnswer"`
		Marks           int      `json:"marks"`
		NegativeMarking bool     `json:"negativeMarking"`
		CategoryID      string   `json:"categoryId"`
		SubcategoryID   string   `json:"subcategoryId"`
		SubjectID       string   `json:"subjectId"`
		ChapterID       string   `json:"chapterId"`
	}

	// Attempt is the recorded outcome of one student's submission for one chapter.
	// Only the latest attempt per chapter is retained.
	Attempt struct {
		MarksObtained float64   `json:"marksObtained"`
		TotalPossible int       `json:"totalPossible"`
		Timestamp     time.Time `json:"timestamp"` // UTC
	}

	Student struct {
		ID           string             `json:"id"`
		Name         string             `json:"name"`
		Email        string             `json:"email"`
		Course       string             `json:"course"` // e.g. CA Foundation
		QuizAttempts map[string]Attempt `json:"quizAttempts"`
	}

	Settings struct {
		NegativeMarkingGlobal bool `json:"negativeMarkingGlobal"`
	}
)

// Document is the whole durable state: every collection plus the settings
// singleton, persisted as one unit.
type Document struct {
	Categories    []Category    `json:"categories"`
	Subcategories []Subcategory `json:"subcategories"`
	Subjects      []Subject     `json:"subjects"`
	Chapters      []Chapter     `json:"chapters"`
	MCQs          []MCQ         `json:"mcqs"`
	Students      []Student     `json:"students"`
	Settings      Settings      `json:"settings"`
}

// NewDocument returns an empty document with default settings.
func NewDocument() Document {
	return Document{
		Categories:    []Category{},
		Subcategories: []Subcategory{},
		Subjects:      []Subject{},
		Chapters:      []Chapter{},
		MCQs:          []MCQ{},
		Students:      []Student{},
		Settings:      Settings{NegativeMarkingGlobal: false},
	}
}

// Store is any durable whole-document store. Save must be all-or-nothing:
// either the new document becomes durable or the old one remains.
type Store interface {
	Load() (Document, error)
	Save(Document) error
}

// Input payloads

type NewCategory struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewCategory) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

type UpdateCategory struct {
	Name string `json:"name" validate:"required"`
}

func (uc *UpdateCategory) Validate(orig Category) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return core.Validate.Struct(uc)
}

type NewSubcategory struct {
	CategoryID string `json:"categoryId" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

func (ns *NewSubcategory) Validate() error {
	ns.CategoryID = core.CleanString(ns.CategoryID)
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

type UpdateSubcategory struct {
	CategoryID string `json:"categoryId" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

func (us *UpdateSubcategory) Validate(orig Subcategory) error {
	if catID := core.CleanString(us.CategoryID); catID != "" {
		us.CategoryID = catID
	} else {
		us.CategoryID = orig.CategoryID
	}
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	return core.Validate.Struct(us)
}

type NewSubject struct {
	SubcategoryID string `json:"subcategoryId" validate:"required"`
	Name          string `json:"name" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.SubcategoryID = core.CleanString(ns.SubcategoryID)
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

type UpdateSubject struct {
	SubcategoryID string `json:"subcategoryId" validate:"required"`
	Name          string `json:"name" validate:"required"`
}

func (us *UpdateSubject) Validate(orig Subject) error {
	if subcatID := core.CleanString(us.SubcategoryID); subcatID != "" {
		us.SubcategoryID = subcatID
	} else {
		us.SubcategoryID = orig.SubcategoryID
	}
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	return core.Validate.Struct(us)
}

type NewChapter struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (nc *NewChapter) Validate() error {
	nc.SubjectID = core.CleanString(nc.SubjectID)
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

type UpdateChapter struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (uc *UpdateChapter) Validate(orig Chapter) error {
	if subjID := core.CleanString(uc.SubjectID); subjID != "" {
		uc.SubjectID = subjID
	} else {
		uc.SubjectID = orig.SubjectID
	}
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return core.Validate.Struct(uc)
}

// NewMCQ contains information needed to create (or fully replace) an MCQ.
// Zero is an accepted value for the numeric fields, hence the pointers.
type NewMCQ struct {
	Question        string   `json:"question" validate:"required"`
	Options         []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer   *int     `json:"correctAnswer" validate:"required,min=0,max=3"`
	Marks           *int     `json:"marks" validate:"required,gt=0"`
	NegativeMarking bool     `json:"negativeMarking"`
	CategoryID      string   `json:"categoryId" validate:"required"`
	SubcategoryID   string   `json:"subcategoryId" validate:"required"`
	SubjectID       string   `json:"subjectId" validate:"required"`
	ChapterID       string   `json:"chapterId" validate:"required"`
}

func (nm *NewMCQ) Validate() error {
	nm.Question = core.CleanString(nm.Question)
	nm.Options = core.CleanStrings(nm.Options)
	nm.CategoryID = core.CleanString(nm.CategoryID)
	nm.SubcategoryID = core.CleanString(nm.SubcategoryID)
	nm.SubjectID = core.CleanString(nm.SubjectID)
	nm.ChapterID = core.CleanString(nm.ChapterID)
	return core.Validate.Struct(nm)
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Course string `json:"course" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Course = core.CleanString(ns.Course)
	return core.Validate.Struct(ns)
}

// SettingsPatch is shallow-merged into the settings singleton; unset fields
// are retained.
type SettingsPatch struct {
	NegativeMarkingGlobal *bool `json:"negativeMarkingGlobal"`
}
