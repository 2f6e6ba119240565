package catalog

import "github.com/trezcool/mtihani/core"

// MCQ operations. Each of the four foreign ids is checked against its own
// collection independently; whether the referenced chapter actually belongs to
// the referenced subject/subcategory/category is not verified (the four ids are
// denormalized convenience fields).

func (svc *Service) MCQs() []MCQ {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]MCQ(nil), svc.doc.MCQs...)
}

func (svc *Service) MCQsByChapter(chapterID string) []MCQ {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	mcqs := make([]MCQ, 0)
	for _, mcq := range svc.doc.MCQs {
		if mcq.ChapterID == chapterID {
			mcqs = append(mcqs, mcq)
		}
	}
	return mcqs
}

func (svc *Service) chapterExists(id string) bool {
	for _, chap := range svc.doc.Chapters {
		if chap.ID == id {
			return true
		}
	}
	return false
}

// checkMCQRefs verifies each foreign id against its collection. Callers must
// hold the lock.
func (svc *Service) checkMCQRefs(nm NewMCQ) error {
	if !svc.categoryExists(nm.CategoryID) {
		return core.NewNotFoundError("category")
	}
	if !svc.subcategoryExists(nm.SubcategoryID) {
		return core.NewNotFoundError("subcategory")
	}
	if !svc.subjectExists(nm.SubjectID) {
		return core.NewNotFoundError("subject")
	}
	if !svc.chapterExists(nm.ChapterID) {
		return core.NewNotFoundError("chapter")
	}
	return nil
}

func newMCQFromInput(id string, nm NewMCQ) MCQ {
	return MCQ{
		ID:              id,
		Question:        nm.Question,
		Options:         append([]string(nil), nm.Options...),
		CorrectAnswer:   *nm.CorrectAnswer,
		Marks:           *nm.Marks,
		NegativeMarking: nm.NegativeMarking,
		CategoryID:      nm.CategoryID,
		SubcategoryID:   nm.SubcategoryID,
		SubjectID:       nm.SubjectID,
		ChapterID:       nm.ChapterID,
	}
}

func (svc *Service) CreateMCQ(nm NewMCQ) (MCQ, error) {
	if err := nm.Validate(); err != nil {
		return MCQ{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := svc.checkMCQRefs(nm); err != nil {
		return MCQ{}, err
	}

	mcq := newMCQFromInput(svc.newID(), nm)
	doc := svc.doc
	doc.MCQs = append(append([]MCQ(nil), svc.doc.MCQs...), mcq)
	if err := svc.commit(doc); err != nil {
		return MCQ{}, err
	}
	return mcq, nil
}

// UpdateMCQ fully replaces the stored question; the payload is validated like
// a create.
func (svc *Service) UpdateMCQ(id string, nm NewMCQ) (MCQ, error) {
	if err := nm.Validate(); err != nil {
		return MCQ{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, mcq := range svc.doc.MCQs {
		if mcq.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return MCQ{}, core.NewNotFoundError("mcq")
	}
	if err := svc.checkMCQRefs(nm); err != nil {
		return MCQ{}, err
	}

	mcq := newMCQFromInput(id, nm)
	doc := svc.doc
	doc.MCQs = append([]MCQ(nil), svc.doc.MCQs...)
	doc.MCQs[idx] = mcq
	if err := svc.commit(doc); err != nil {
		return MCQ{}, err
	}
	return mcq, nil
}

// DeleteMCQ deletes unconditionally; questions have no dependents.
func (svc *Service) DeleteMCQ(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, mcq := range svc.doc.MCQs {
		if mcq.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("mcq")
	}

	doc := svc.doc
	doc.MCQs = make([]MCQ, 0, len(svc.doc.MCQs)-1)
	doc.MCQs = append(doc.MCQs, svc.doc.MCQs[:idx]...)
	doc.MCQs = append(doc.MCQs, svc.doc.MCQs[idx+1:]...)
	return svc.commit(doc)
}
