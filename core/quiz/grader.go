package quiz

import (
	"errors"

	"github.com/trezcool/mtihani/core"
	"github.com/trezcool/mtihani/core/catalog"
)

var ErrEmptyChapter = errors.New("no questions found for this chapter")

// A wrong (or omitted) answer loses 25% of the question's marks whenever
// negative marking applies.
const negativeMarkingFactor = 0.25

// Catalog is the slice of the catalog service the grader needs.
type Catalog interface {
	MCQsByChapter(chapterID string) []catalog.MCQ
	Settings() catalog.Settings
	RecordAttempt(studentID, chapterID string, marksObtained float64, totalPossible int) error
}

type Service struct {
	catalog Catalog
}

func NewService(cat Catalog) *Service {
	return &Service{catalog: cat}
}

type (
	QuestionResult struct {
		Correct        bool     `json:"correct"`
		CorrectAnswer  int      `json:"correctAnswer"`
		SelectedAnswer *int     `json:"selectedAnswer"`
		Marks          int      `json:"marks"`
		Question       string   `json:"question"`
		Options        []string `json:"options"`
	}

	Result struct {
		TotalMarks    float64                   `json:"totalMarks"`
		TotalPossible int                       `json:"totalPossible"`
		Results       map[string]QuestionResult `json:"results"`
	}
)

// Grade scores the submitted answers against a chapter's questions. An absent
// answer is never correct and incurs the same negative-marking penalty as a
// wrong one; the total is never clamped at zero.
//
// When studentID resolves to a registered student the outcome is recorded on
// that student (replacing any prior attempt for the chapter); an unknown
// studentID does not fail the grading, it just records nothing.
func (svc *Service) Grade(chapterID string, answers map[string]int, studentID string) (Result, error) {
	mcqs := svc.catalog.MCQsByChapter(chapterID)
	if len(mcqs) == 0 {
		return Result{}, ErrEmptyChapter
	}

	settings := svc.catalog.Settings()
	result := Result{Results: make(map[string]QuestionResult, len(mcqs))}

	for _, mcq := range mcqs {
		result.TotalPossible += mcq.Marks

		selected, answered := answers[mcq.ID]
		correct := answered && selected == mcq.CorrectAnswer
		if correct {
			result.TotalMarks += float64(mcq.Marks)
		} else if mcq.NegativeMarking || settings.NegativeMarkingGlobal {
			result.TotalMarks -= float64(mcq.Marks) * negativeMarkingFactor
		}

		qr := QuestionResult{
			Correct:       correct,
			CorrectAnswer: mcq.CorrectAnswer,
			Marks:         mcq.Marks,
			Question:      mcq.Question,
			Options:       mcq.Options,
		}
		if answered {
			sel := selected
			qr.SelectedAnswer = &sel
		}
		result.Results[mcq.ID] = qr
	}

	if studentID != "" {
		err := svc.catalog.RecordAttempt(studentID, chapterID, result.TotalMarks, result.TotalPossible)
		if err != nil {
			var nfErr *core.NotFoundError
			if !errors.As(err, &nfErr) {
				return Result{}, err
			}
		}
	}

	return result, nil
}
