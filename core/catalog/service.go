package catalog

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/mtihani/core"
)

var (
	// sibling name collisions
	ErrCategoryExists    = errors.New("a category with this name already exists")
	ErrSubcategoryExists = errors.New("a subcategory with this name already exists in this category")
	ErrSubjectExists     = errors.New("a subject with this name already exists in this subcategory")
	ErrChapterExists     = errors.New("a chapter with this name already exists in this subject")
)

// Service owns the in-memory document and enforces uniqueness and referential
// integrity on every mutation. A single mutex spans validate+mutate+persist so
// no two mutations interleave; the updated document is saved durably before it
// replaces the in-memory one, so a failed save leaves both states unchanged.
type Service struct {
	store   Store
	mailSvc core.EmailService

	newID func() string    // injectable for tests
	now   func() time.Time // UTC

	mu  sync.RWMutex
	doc Document
}

func NewService(store Store, mailSvc core.EmailService) (*Service, error) {
	doc, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:   store,
		mailSvc: mailSvc,
		newID:   func() string { return uuid.New().String() },
		now:     func() time.Time { return time.Now().UTC() },
		doc:     doc,
	}, nil
}

// commit persists doc and, only on success, makes it the current in-memory state.
// Callers must hold the write lock.
func (svc *Service) commit(doc Document) error {
	if err := svc.store.Save(doc); err != nil {
		return core.NewPersistenceError(err)
	}
	svc.doc = doc
	return nil
}

func duplicateName(err error) error {
	return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Categories

func (svc *Service) Categories() []Category {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]Category(nil), svc.doc.Categories...)
}

func (svc *Service) CategoryByID(id string) (Category, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, cat := range svc.doc.Categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, core.NewNotFoundError("category")
}

func (svc *Service) categoryNameTaken(name, excludedID string) bool {
	for _, cat := range svc.doc.Categories {
		if cat.ID != excludedID && sameName(cat.Name, name) {
			return true
		}
	}
	return false
}

func (svc *Service) CreateCategory(nc NewCategory) (Category, error) {
	if err := nc.Validate(); err != nil {
		return Category{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.categoryNameTaken(nc.Name, "") {
		return Category{}, duplicateName(ErrCategoryExists)
	}

	cat := Category{ID: svc.newID(), Name: nc.Name}
	doc := svc.doc
	doc.Categories = append(append([]Category(nil), svc.doc.Categories...), cat)
	if err := svc.commit(doc); err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (svc *Service) UpdateCategory(id string, uc UpdateCategory) (Category, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, cat := range svc.doc.Categories {
		if cat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Category{}, core.NewNotFoundError("category")
	}

	orig := svc.doc.Categories[idx]
	if err := uc.Validate(orig); err != nil {
		return Category{}, err
	}
	if svc.categoryNameTaken(uc.Name, id) {
		return Category{}, duplicateName(ErrCategoryExists)
	}

	cat := orig
	cat.Name = uc.Name
	doc := svc.doc
	doc.Categories = append([]Category(nil), svc.doc.Categories...)
	doc.Categories[idx] = cat
	if err := svc.commit(doc); err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (svc *Service) DeleteCategory(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, cat := range svc.doc.Categories {
		if cat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("category")
	}
	for _, sub := range svc.doc.Subcategories {
		if sub.CategoryID == id {
			return core.NewConflictError("category still has subcategories and cannot be deleted")
		}
	}

	doc := svc.doc
	doc.Categories = make([]Category, 0, len(svc.doc.Categories)-1)
	doc.Categories = append(doc.Categories, svc.doc.Categories[:idx]...)
	doc.Categories = append(doc.Categories, svc.doc.Categories[idx+1:]...)
	return svc.commit(doc)
}

// Subcategories

func (svc *Service) Subcategories() []Subcategory {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]Subcategory(nil), svc.doc.Subcategories...)
}

// SubcategoriesByCategory returns the subcategories of a category in storage
// order; an unknown category yields an empty sequence, not an error.
func (svc *Service) SubcategoriesByCategory(categoryID string) []Subcategory {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	subs := make([]Subcategory, 0)
	for _, sub := range svc.doc.Subcategories {
		if sub.CategoryID == categoryID {
			subs = append(subs, sub)
		}
	}
	return subs
}

func (svc *Service) subcategoryNameTaken(categoryID, name, excludedID string) bool {
	for _, sub := range svc.doc.Subcategories {
		if sub.ID != excludedID && sub.CategoryID == categoryID && sameName(sub.Name, name) {
			return true
		}
	}
	return false
}

func (svc *Service) categoryExists(id string) bool {
	for _, cat := range svc.doc.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

func (svc *Service) CreateSubcategory(ns NewSubcategory) (Subcategory, error) {
	if err := ns.Validate(); err != nil {
		return Subcategory{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.categoryExists(ns.CategoryID) {
		return Subcategory{}, core.NewNotFoundError("category")
	}
	if svc.subcategoryNameTaken(ns.CategoryID, ns.Name, "") {
		return Subcategory{}, duplicateName(ErrSubcategoryExists)
	}

	sub := Subcategory{ID: svc.newID(), CategoryID: ns.CategoryID, Name: ns.Name}
	doc := svc.doc
	doc.Subcategories = append(append([]Subcategory(nil), svc.doc.Subcategories...), sub)
	if err := svc.commit(doc); err != nil {
		return Subcategory{}, err
	}
	return sub, nil
}

func (svc *Service) UpdateSubcategory(id string, us UpdateSubcategory) (Subcategory, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, sub := range svc.doc.Subcategories {
		if sub.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Subcategory{}, core.NewNotFoundError("subcategory")
	}

	orig := svc.doc.Subcategories[idx]
	if err := us.Validate(orig); err != nil {
		return Subcategory{}, err
	}
	if !svc.categoryExists(us.CategoryID) {
		return Subcategory{}, core.NewNotFoundError("category")
	}
	if svc.subcategoryNameTaken(us.CategoryID, us.Name, id) {
		return Subcategory{}, duplicateName(ErrSubcategoryExists)
	}

	sub := orig
	sub.CategoryID = us.CategoryID
	sub.Name = us.Name
	doc := svc.doc
	doc.Subcategories = append([]Subcategory(nil), svc.doc.Subcategories...)
	doc.Subcategories[idx] = sub
	if err := svc.commit(doc); err != nil {
		return Subcategory{}, err
	}
	return sub, nil
}

func (svc *Service) DeleteSubcategory(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, sub := range svc.doc.Subcategories {
		if sub.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("subcategory")
	}
	for _, subj := range svc.doc.Subjects {
		if subj.SubcategoryID == id {
			return core.NewConflictError("subcategory still has subjects and cannot be deleted")
		}
	}

	doc := svc.doc
	doc.Subcategories = make([]Subcategory, 0, len(svc.doc.Subcategories)-1)
	doc.Subcategories = append(doc.Subcategories, svc.doc.Subcategories[:idx]...)
	doc.Subcategories = append(doc.Subcategories, svc.doc.Subcategories[idx+1:]...)
	return svc.commit(doc)
}

// Subjects

func (svc *Service) Subjects() []Subject {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]Subject(nil), svc.doc.Subjects...)
}

func (svc *Service) SubjectsBySubcategory(subcategoryID string) []Subject {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	subjects := make([]Subject, 0)
	for _, subj := range svc.doc.Subjects {
		if subj.SubcategoryID == subcategoryID {
			subjects = append(subjects, subj)
		}
	}
	return subjects
}

func (svc *Service) subjectNameTaken(subcategoryID, name, excludedID string) bool {
	for _, subj := range svc.doc.Subjects {
		if subj.ID != excludedID && subj.SubcategoryID == subcategoryID && sameName(subj.Name, name) {
			return true
		}
	}
	return false
}

func (svc *Service) subcategoryExists(id string) bool {
	for _, sub := range svc.doc.Subcategories {
		if sub.ID == id {
			return true
		}
	}
	return false
}

func (svc *Service) CreateSubject(ns NewSubject) (Subject, error) {
	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.subcategoryExists(ns.SubcategoryID) {
		return Subject{}, core.NewNotFoundError("subcategory")
	}
	if svc.subjectNameTaken(ns.SubcategoryID, ns.Name, "") {
		return Subject{}, duplicateName(ErrSubjectExists)
	}

	subj := Subject{ID: svc.newID(), SubcategoryID: ns.SubcategoryID, Name: ns.Name}
	doc := svc.doc
	doc.Subjects = append(append([]Subject(nil), svc.doc.Subjects...), subj)
	if err := svc.commit(doc); err != nil {
		return Subject{}, err
	}
	return subj, nil
}

func (svc *Service) UpdateSubject(id string, us UpdateSubject) (Subject, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, subj := range svc.doc.Subjects {
		if subj.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Subject{}, core.NewNotFoundError("subject")
	}

	orig := svc.doc.Subjects[idx]
	if err := us.Validate(orig); err != nil {
		return Subject{}, err
	}
	if !svc.subcategoryExists(us.SubcategoryID) {
		return Subject{}, core.NewNotFoundError("subcategory")
	}
	if svc.subjectNameTaken(us.SubcategoryID, us.Name, id) {
		return Subject{}, duplicateName(ErrSubjectExists)
	}

	subj := orig
	subj.SubcategoryID = us.SubcategoryID
	subj.Name = us.Name
	doc := svc.doc
	doc.Subjects = append([]Subject(nil), svc.doc.Subjects...)
	doc.Subjects[idx] = subj
	if err := svc.commit(doc); err != nil {
		return Subject{}, err
	}
	return subj, nil
}

func (svc *Service) DeleteSubject(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, subj := range svc.doc.Subjects {
		if subj.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("subject")
	}
	for _, chap := range svc.doc.Chapters {
		if chap.SubjectID == id {
			return core.NewConflictError("subject still has chapters and cannot be deleted")
		}
	}

	doc := svc.doc
	doc.Subjects = make([]Subject, 0, len(svc.doc.Subjects)-1)
	doc.Subjects = append(doc.Subjects, svc.doc.Subjects[:idx]...)
	doc.Subjects = append(doc.Subjects, svc.doc.Subjects[idx+1:]...)
	return svc.commit(doc)
}

// Chapters

func (svc *Service) Chapters() []Chapter {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]Chapter(nil), svc.doc.Chapters...)
}

func (svc *Service) ChaptersBySubject(subjectID string) []Chapter {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	chapters := make([]Chapter, 0)
	for _, chap := range svc.doc.Chapters {
		if chap.SubjectID == subjectID {
			chapters = append(chapters, chap)
		}
	}
	return chapters
}

func (svc *Service) chapterNameTaken(subjectID, name, excludedID string) bool {
	for _, chap := range svc.doc.Chapters {
		if chap.ID != excludedID && chap.SubjectID == subjectID && sameName(chap.Name, name) {
			return true
		}
	}
	return false
}

func (svc *Service) subjectExists(id string) bool {
	for _, subj := range svc.doc.Subjects {
		if subj.ID == id {
			return true
		}
	}
	return false
}

func (svc *Service) CreateChapter(nc NewChapter) (Chapter, error) {
	if err := nc.Validate(); err != nil {
		return Chapter{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.subjectExists(nc.SubjectID) {
		return Chapter{}, core.NewNotFoundError("subject")
	}
	if svc.chapterNameTaken(nc.SubjectID, nc.Name, "") {
		return Chapter{}, duplicateName(ErrChapterExists)
	}

	chap := Chapter{ID: svc.newID(), SubjectID: nc.SubjectID, Name: nc.Name}
	doc := svc.doc
	doc.Chapters = append(append([]Chapter(nil), svc.doc.Chapters...), chap)
	if err := svc.commit(doc); err != nil {
		return Chapter{}, err
	}
	return chap, nil
}

func (svc *Service) UpdateChapter(id string, uc UpdateChapter) (Chapter, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, chap := range svc.doc.Chapters {
		if chap.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Chapter{}, core.NewNotFoundError("chapter")
	}

	orig := svc.doc.Chapters[idx]
	if err := uc.Validate(orig); err != nil {
		return Chapter{}, err
	}
	if !svc.subjectExists(uc.SubjectID) {
		return Chapter{}, core.NewNotFoundError("subject")
	}
	if svc.chapterNameTaken(uc.SubjectID, uc.Name, id) {
		return Chapter{}, duplicateName(ErrChapterExists)
	}

	chap := orig
	chap.SubjectID = uc.SubjectID
	chap.Name = uc.Name
	doc := svc.doc
	doc.Chapters = append([]Chapter(nil), svc.doc.Chapters...)
	doc.Chapters[idx] = chap
	if err := svc.commit(doc); err != nil {
		return Chapter{}, err
	}
	return chap, nil
}

func (svc *Service) DeleteChapter(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, chap := range svc.doc.Chapters {
		if chap.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("chapter")
	}
	for _, mcq := range svc.doc.MCQs {
		if mcq.ChapterID == id {
			return core.NewConflictError("chapter still has questions and cannot be deleted")
		}
	}

	doc := svc.doc
	doc.Chapters = make([]Chapter, 0, len(svc.doc.Chapters)-1)
	doc.Chapters = append(doc.Chapters, svc.doc.Chapters[:idx]...)
	doc.Chapters = append(doc.Chapters, svc.doc.Chapters[idx+1:]...)
	return svc.commit(doc)
}

// Settings

func (svc *Service) Settings() Settings {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.doc.Settings
}

// UpdateSettings shallow-merges the patch into the settings singleton.
func (svc *Service) UpdateSettings(p SettingsPatch) (Settings, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	doc := svc.doc
	if p.NegativeMarkingGlobal != nil {
		doc.Settings.NegativeMarkingGlobal = *p.NegativeMarkingGlobal
	}
	if err := svc.commit(doc); err != nil {
		return Settings{}, err
	}
	return doc.Settings, nil
}
