package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core"
	"github.com/trezcool/mtihani/core/quiz"
)

type quizApi struct {
	service *quiz.Service
}

func RegisterQuizAPI(g *echo.Group, svc *quiz.Service) {
	api := quizApi{service: svc}

	g.POST("/submit-quiz", api.submitQuiz)
}

type submitQuizRequest struct {
	ChapterID      string         `json:"chapterId" validate:"required"`
	StudentAnswers map[string]int `json:"studentAnswers"`
	StudentID      string         `json:"studentId"`
}

func (r *submitQuizRequest) Validate() error {
	r.ChapterID = core.CleanString(r.ChapterID)
	r.StudentID = core.CleanString(r.StudentID)
	return core.Validate.Struct(r)
}

func (api *quizApi) submitQuiz(ctx echo.Context) error {
	data := new(submitQuizRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	result, err := api.service.Grade(data.ChapterID, data.StudentAnswers, data.StudentID)
	if err != nil {
		if err == quiz.ErrEmptyChapter {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond(ctx, http.StatusOK, result)
}
