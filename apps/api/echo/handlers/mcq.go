package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core/catalog"
)

type mcqApi struct {
	service *catalog.Service
}

func RegisterMCQAPI(g *echo.Group, svc *catalog.Service) {
	api := mcqApi{service: svc}

	mg := g.Group("/admin/mcqs")
	mg.GET("", api.mcqList)
	mg.POST("", api.mcqCreate)
	mg.PUT("/:id", api.mcqUpdate)
	mg.DELETE("/:id", api.mcqDelete)

	// questions for one chapter; answer delivery is handled by the frontend
	g.GET("/mcqs/:chapterId", api.mcqsByChapter)
}

func (api *mcqApi) mcqList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.MCQs())
}

func (api *mcqApi) mcqsByChapter(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.MCQsByChapter(ctx.Param("chapterId")))
}

func (api *mcqApi) mcqCreate(ctx echo.Context) error {
	data := new(catalog.NewMCQ)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	mcq, err := api.service.CreateMCQ(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, mcq)
}

func (api *mcqApi) mcqUpdate(ctx echo.Context) error {
	data := new(catalog.NewMCQ)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	mcq, err := api.service.UpdateMCQ(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, mcq)
}

func (api *mcqApi) mcqDelete(ctx echo.Context) error {
	if err := api.service.DeleteMCQ(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
