package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core/catalog"
)

type studentApi struct {
	service *catalog.Service
}

func RegisterStudentAPI(g *echo.Group, svc *catalog.Service) {
	api := studentApi{service: svc}

	sg := g.Group("/admin/students")
	sg.GET("", api.studentList)
	sg.POST("", api.studentCreate)
	sg.GET("/:id", api.studentRetrieve)
	sg.DELETE("/:id", api.studentDelete)
}

func (api *studentApi) studentList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Students())
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	stu, err := api.service.StudentByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, stu)
}

func (api *studentApi) studentCreate(ctx echo.Context) error {
	data := new(catalog.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	stu, err := api.service.CreateStudent(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, stu)
}

func (api *studentApi) studentDelete(ctx echo.Context) error {
	if err := api.service.DeleteStudent(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
