package catalog

import (
	"net/mail"

	"github.com/trezcool/mtihani/core"
)

func (svc *Service) Students() []Student {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return append([]Student(nil), svc.doc.Students...)
}

func (svc *Service) StudentByID(id string) (Student, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, stu := range svc.doc.Students {
		if stu.ID == id {
			return stu, nil
		}
	}
	return Student{}, core.NewNotFoundError("student")
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	svc.mu.Lock()
	stu := Student{
		ID:           svc.newID(),
		Name:         ns.Name,
		Email:        ns.Email,
		Course:       ns.Course,
		QuizAttempts: map[string]Attempt{},
	}
	doc := svc.doc
	doc.Students = append(append([]Student(nil), svc.doc.Students...), stu)
	err := svc.commit(doc)
	svc.mu.Unlock()
	if err != nil {
		return Student{}, err
	}

	svc.sendWelcomeEmail(stu)
	return stu, nil
}

func (svc *Service) sendWelcomeEmail(stu Student) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: stu.Name, Address: stu.Email}},
		Subject:      "Welcome!",
		TemplateName: "welcome",
		TemplateData: stu,
	})
}

// DeleteStudent deletes unconditionally; attempts live inside the record.
func (svc *Service) DeleteStudent(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, stu := range svc.doc.Students {
		if stu.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("student")
	}

	doc := svc.doc
	doc.Students = make([]Student, 0, len(svc.doc.Students)-1)
	doc.Students = append(doc.Students, svc.doc.Students[:idx]...)
	doc.Students = append(doc.Students, svc.doc.Students[idx+1:]...)
	return svc.commit(doc)
}

// RecordAttempt stores the outcome of a graded submission on the student,
// replacing any prior attempt for the same chapter.
func (svc *Service) RecordAttempt(studentID, chapterID string, marksObtained float64, totalPossible int) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := -1
	for i, stu := range svc.doc.Students {
		if stu.ID == studentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.NewNotFoundError("student")
	}

	stu := svc.doc.Students[idx]
	attempts := make(map[string]Attempt, len(stu.QuizAttempts)+1)
	for chID, att := range stu.QuizAttempts {
		attempts[chID] = att
	}
	attempts[chapterID] = Attempt{
		MarksObtained: marksObtained,
		TotalPossible: totalPossible,
		Timestamp:     svc.now(),
	}
	stu.QuizAttempts = attempts

	doc := svc.doc
	doc.Students = append([]Student(nil), svc.doc.Students...)
	doc.Students[idx] = stu
	return svc.commit(doc)
}
