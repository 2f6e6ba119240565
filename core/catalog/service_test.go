package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mtihani/core"
)

// memStore keeps the document in memory; saveErr makes every Save fail.
type memStore struct {
	doc     Document
	saveErr error
	saves   int
}

func (st *memStore) Load() (Document, error) { return st.doc, nil }
func (st *memStore) Save(doc Document) error {
	if st.saveErr != nil {
		return st.saveErr
	}
	st.doc = doc
	st.saves++
	return nil
}

func setup(t *testing.T) (*Service, *memStore) {
	st := &memStore{doc: NewDocument()}
	svc, err := NewService(st, nil)
	if err != nil {
		t.Fatalf("NewService() failed, %v", err)
	}
	return svc, st
}

type hierarchy struct {
	cat  Category
	sub  Subcategory
	subj Subject
	chap Chapter
}

func seedHierarchy(t *testing.T, svc *Service) hierarchy {
	cat, err := svc.CreateCategory(NewCategory{Name: "Commerce"})
	if err != nil {
		t.Fatalf("CreateCategory() failed, %v", err)
	}
	sub, err := svc.CreateSubcategory(NewSubcategory{CategoryID: cat.ID, Name: "CA Foundation"})
	if err != nil {
		t.Fatalf("CreateSubcategory() failed, %v", err)
	}
	subj, err := svc.CreateSubject(NewSubject{SubcategoryID: sub.ID, Name: "Accounts"})
	if err != nil {
		t.Fatalf("CreateSubject() failed, %v", err)
	}
	chap, err := svc.CreateChapter(NewChapter{SubjectID: subj.ID, Name: "Introduction"})
	if err != nil {
		t.Fatalf("CreateChapter() failed, %v", err)
	}
	return hierarchy{cat: cat, sub: sub, subj: subj, chap: chap}
}

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func Test_Service_CreateCategory(t *testing.T) {
	svc, _ := setup(t)

	cat, err := svc.CreateCategory(NewCategory{Name: "  Commerce "})
	assert.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "Commerce", cat.Name) // trimmed

	// sibling names are unique, case-insensitively
	_, err = svc.CreateCategory(NewCategory{Name: "commerce"})
	var vErr *core.ValidationError
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "name", vErr.Fields[0].Field)
	}

	// empty name
	_, err = svc.CreateCategory(NewCategory{Name: "   "})
	assert.Error(t, err)

	assert.Len(t, svc.Categories(), 1)
}

func Test_Service_UpdateCategory(t *testing.T) {
	svc, _ := setup(t)
	cat, _ := svc.CreateCategory(NewCategory{Name: "Commerce"})
	other, _ := svc.CreateCategory(NewCategory{Name: "Science"})

	// renaming to its own name is not a collision
	got, err := svc.UpdateCategory(cat.ID, UpdateCategory{Name: "COMMERCE"})
	assert.NoError(t, err)
	assert.Equal(t, "COMMERCE", got.Name)
	assert.Equal(t, cat.ID, got.ID)

	// empty name falls back to the current one
	got, err = svc.UpdateCategory(cat.ID, UpdateCategory{})
	assert.NoError(t, err)
	assert.Equal(t, "COMMERCE", got.Name)

	// renaming onto a sibling collides
	_, err = svc.UpdateCategory(other.ID, UpdateCategory{Name: "commerce"})
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = svc.UpdateCategory("nope", UpdateCategory{Name: "Arts"})
	var nfErr *core.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func Test_Service_DeleteCategory(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	// blocked while subcategories reference it
	err := svc.DeleteCategory(h.cat.ID)
	var cErr *core.ConflictError
	assert.True(t, errors.As(err, &cErr))
	assert.Len(t, svc.Categories(), 1)

	empty, _ := svc.CreateCategory(NewCategory{Name: "Science"})
	assert.NoError(t, svc.DeleteCategory(empty.ID))

	var nfErr *core.NotFoundError
	assert.True(t, errors.As(svc.DeleteCategory("nope"), &nfErr))
}

func Test_Service_subcategories(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	// unknown parent
	_, err := svc.CreateSubcategory(NewSubcategory{CategoryID: "nope", Name: "CS Executive"})
	var nfErr *core.NotFoundError
	assert.True(t, errors.As(err, &nfErr))

	// duplicate within the same category
	_, err = svc.CreateSubcategory(NewSubcategory{CategoryID: h.cat.ID, Name: "ca foundation"})
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))

	// same name under a different category is fine
	other, _ := svc.CreateCategory(NewCategory{Name: "Science"})
	_, err = svc.CreateSubcategory(NewSubcategory{CategoryID: other.ID, Name: "CA Foundation"})
	assert.NoError(t, err)

	// filtered listing; unknown parent yields an empty (non-nil) slice
	assert.Len(t, svc.SubcategoriesByCategory(h.cat.ID), 1)
	assert.NotNil(t, svc.SubcategoriesByCategory("nope"))
	assert.Empty(t, svc.SubcategoriesByCategory("nope"))

	// reparenting checks the new parent
	_, err = svc.UpdateSubcategory(h.sub.ID, UpdateSubcategory{CategoryID: "nope"})
	assert.True(t, errors.As(err, &nfErr))

	got, err := svc.UpdateSubcategory(h.sub.ID, UpdateSubcategory{CategoryID: other.ID, Name: "CS Executive"})
	assert.NoError(t, err)
	assert.Equal(t, other.ID, got.CategoryID)

	// blocked delete while subjects reference it
	err = svc.DeleteSubcategory(h.sub.ID)
	var cErr *core.ConflictError
	assert.True(t, errors.As(err, &cErr))
}

func Test_Service_subjectsAndChapters(t *testing.T) {
	svc, _ := setup(t)
	h := seedHierarchy(t, svc)

	_, err := svc.CreateSubject(NewSubject{SubcategoryID: "nope", Name: "Law"})
	var nfErr *core.NotFoundError
	assert.True(t, errors.As(err, &nfErr))

	_, err = svc.CreateSubject(NewSubject{SubcategoryID: h.sub.ID, Name: "ACCOUNTS"})
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))

	law, err := svc.CreateSubject(NewSubject{SubcategoryID: h.sub.ID, Name: "Law"})
	assert.NoError(t, err)
	assert.Len(t, svc.SubjectsBySubcategory(h.sub.ID), 2)

	_, err = svc.CreateChapter(NewChapter{SubjectID: "nope", Name: "Contracts"})
	assert.True(t, errors.As(err, &nfErr))

	// same chapter name under a different subject is fine
	_, err = svc.CreateChapter(NewChapter{SubjectID: law.ID, Name: "Introduction"})
	assert.NoError(t, err)
	assert.Len(t, svc.ChaptersBySubject(h.subj.ID), 1)
	assert.Len(t, svc.ChaptersBySubject(law.ID), 1)

	err = svc.DeleteSubject(h.subj.ID)
	var cErr *core.ConflictError
	assert.True(t, errors.As(err, &cErr))
	assert.True(t, errors.As(svc.DeleteSubject(law.ID), &cErr))

	empty, _ := svc.CreateSubject(NewSubject{SubcategoryID: h.sub.ID, Name: "Economics"})
	assert.NoError(t, svc.DeleteSubject(empty.ID))
}

func Test_Service_UpdateSettings(t *testing.T) {
	svc, st := setup(t)

	assert.False(t, svc.Settings().NegativeMarkingGlobal)

	got, err := svc.UpdateSettings(SettingsPatch{NegativeMarkingGlobal: boolPtr(true)})
	assert.NoError(t, err)
	assert.True(t, got.NegativeMarkingGlobal)
	assert.True(t, st.doc.Settings.NegativeMarkingGlobal)

	// unset fields are retained
	got, err = svc.UpdateSettings(SettingsPatch{})
	assert.NoError(t, err)
	assert.True(t, got.NegativeMarkingGlobal)
}

func Test_Service_failedSaveRollsBack(t *testing.T) {
	svc, st := setup(t)
	h := seedHierarchy(t, svc)

	st.saveErr = errors.New("disk full")

	_, err := svc.CreateCategory(NewCategory{Name: "Science"})
	var pErr *core.PersistenceError
	assert.True(t, errors.As(err, &pErr))

	// both in-memory and stored state are unchanged
	assert.Len(t, svc.Categories(), 1)
	assert.Len(t, st.doc.Categories, 1)

	_, err = svc.UpdateCategory(h.cat.ID, UpdateCategory{Name: "Science"})
	assert.True(t, errors.As(err, &pErr))
	got, _ := svc.CategoryByID(h.cat.ID)
	assert.Equal(t, "Commerce", got.Name)

	st.saveErr = nil
	_, err = svc.CreateCategory(NewCategory{Name: "Science"})
	assert.NoError(t, err)
	assert.Len(t, svc.Categories(), 2)
}
