package catalog

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mtihani/core"
)

func newTestMCQ(h hierarchy) NewMCQ {
	return NewMCQ{
		Question:        "Which of these is a liability?",
		Options:         []string{"Cash", "Creditors", "Debtors", "Stock"},
		CorrectAnswer:   intPtr(1),
		Marks:           intPtr(2),
		NegativeMarking: true,
		CategoryID:      h.cat.ID,
		SubcategoryID:   h.sub.ID,
		SubjectID:       h.subj.ID,
		ChapterID:       h.chap.ID,
	}
}

func Test_Service_CreateMCQ(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	mcq, err := svc.CreateMCQ(newTestMCQ(h))
	assert.NoError(t, err)
	assert.NotEmpty(t, mcq.ID)
	assert.Equal(t, 1, mcq.CorrectAnswer)
	assert.Equal(t, 2, mcq.Marks)
	assert.True(t, mcq.NegativeMarking)

	// zero is a valid correct answer index
	nm := newTestMCQ(h)
	nm.CorrectAnswer = intPtr(0)
	_, err = svc.CreateMCQ(nm)
	assert.NoError(t, err)

	assert.Len(t, svc.MCQs(), 2)
	assert.Len(t, svc.MCQsByChapter(h.chap.ID), 2)
	assert.Empty(t, svc.MCQsByChapter("nope"))
	assert.NotNil(t, svc.MCQsByChapter("nope"))
}

func Test_Service_CreateMCQ_validation(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	tests := []struct {
		name   string
		mutate func(*NewMCQ)
	}{
		{name: "missing question", mutate: func(nm *NewMCQ) { nm.Question = "  " }},
		{name: "3 options", mutate: func(nm *NewMCQ) { nm.Options = nm.Options[:3] }},
		{name: "5 options", mutate: func(nm *NewMCQ) { nm.Options = append(nm.Options, "Bank") }},
		{name: "blank option", mutate: func(nm *NewMCQ) { nm.Options[2] = " " }},
		{name: "no correct answer", mutate: func(nm *NewMCQ) { nm.CorrectAnswer = nil }},
		{name: "correct answer out of range", mutate: func(nm *NewMCQ) { nm.CorrectAnswer = intPtr(4) }},
		{name: "negative correct answer", mutate: func(nm *NewMCQ) { nm.CorrectAnswer = intPtr(-1) }},
		{name: "no marks", mutate: func(nm *NewMCQ) { nm.Marks = nil }},
		{name: "zero marks", mutate: func(nm *NewMCQ) { nm.Marks = intPtr(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nm := newTestMCQ(h)
			tt.mutate(&nm)
			_, err := svc.CreateMCQ(nm)
			var vErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &vErrs), "want validation error, got %v", err)
		})
	}
	assert.Empty(t, svc.MCQs())
}

func Test_Service_CreateMCQ_unknownRefs(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	tests := []struct {
		name         string
		mutate       func(*NewMCQ)
		wantResource string
	}{
		{name: "unknown category", mutate: func(nm *NewMCQ) { nm.CategoryID = "nope" }, wantResource: "category"},
		{name: "unknown subcategory", mutate: func(nm *NewMCQ) { nm.SubcategoryID = "nope" }, wantResource: "subcategory"},
		{name: "unknown subject", mutate: func(nm *NewMCQ) { nm.SubjectID = "nope" }, wantResource: "subject"},
		{name: "unknown chapter", mutate: func(nm *NewMCQ) { nm.ChapterID = "nope" }, wantResource: "chapter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nm := newTestMCQ(h)
			tt.mutate(&nm)
			_, err := svc.CreateMCQ(nm)
			var nfErr *core.NotFoundError
			if assert.True(t, errors.As(err, &nfErr)) {
				assert.Equal(t, tt.wantResource, nfErr.Resource)
			}
		})
	}
}

func Test_Service_UpdateMCQ(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)
	mcq, _ := svc.CreateMCQ(newTestMCQ(h))

	// full replace
	nm := newTestMCQ(h)
	nm.Question = "The accounting equation is Assets = Liabilities + ?"
	nm.Options = []string{"Income", "Expenses", "Capital", "Drawings"}
	nm.CorrectAnswer = intPtr(2)
	nm.Marks = intPtr(4)
	nm.NegativeMarking = false

	got, err := svc.UpdateMCQ(mcq.ID, nm)
	assert.NoError(t, err)
	assert.Equal(t, mcq.ID, got.ID)
	assert.Equal(t, nm.Question, got.Question)
	assert.Equal(t, 2, got.CorrectAnswer)
	assert.Equal(t, 4, got.Marks)
	assert.False(t, got.NegativeMarking)
	assert.Len(t, svc.MCQs(), 1)

	// the payload is validated like a create
	bad := newTestMCQ(h)
	bad.Marks = nil
	_, err = svc.UpdateMCQ(mcq.ID, bad)
	assert.Error(t, err)

	var nfErr *core.NotFoundError
	_, err = svc.UpdateMCQ("nope", newTestMCQ(h))
	assert.True(t, errors.As(err, &nfErr))
}

func Test_Service_DeleteMCQ(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)
	mcq, _ := svc.CreateMCQ(newTestMCQ(h))

	assert.NoError(t, svc.DeleteMCQ(mcq.ID))
	assert.Empty(t, svc.MCQs())

	var nfErr *core.NotFoundError
	assert.True(t, errors.As(svc.DeleteMCQ(mcq.ID), &nfErr))
}
