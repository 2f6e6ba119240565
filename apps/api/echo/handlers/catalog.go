package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core/catalog"
)

type catalogApi struct {
	service *catalog.Service
}

// RegisterCatalogAPI mounts the hierarchy endpoints: admin CRUD plus the
// public browsing routes used by the student frontend.
func RegisterCatalogAPI(g *echo.Group, svc *catalog.Service) {
	api := catalogApi{service: svc}

	ag := g.Group("/admin")

	cg := ag.Group("/categories")
	cg.GET("", api.categoryList)
	cg.POST("", api.categoryCreate)
	cg.PUT("/:id", api.categoryUpdate)
	cg.DELETE("/:id", api.categoryDelete)

	sg := ag.Group("/subcategories")
	sg.GET("", api.subcategoryList)
	sg.POST("", api.subcategoryCreate)
	sg.PUT("/:id", api.subcategoryUpdate)
	sg.DELETE("/:id", api.subcategoryDelete)

	subjg := ag.Group("/subjects")
	subjg.GET("", api.subjectList)
	subjg.POST("", api.subjectCreate)
	subjg.PUT("/:id", api.subjectUpdate)
	subjg.DELETE("/:id", api.subjectDelete)

	chg := ag.Group("/chapters")
	chg.GET("", api.chapterList)
	chg.POST("", api.chapterCreate)
	chg.PUT("/:id", api.chapterUpdate)
	chg.DELETE("/:id", api.chapterDelete)

	// public browsing, level by level
	g.GET("/categories", api.categoryList)
	g.GET("/subcategories/:categoryId", api.subcategoriesByCategory)
	g.GET("/subjects/:subcategoryId", api.subjectsBySubcategory)
	g.GET("/chapters/:subjectId", api.chaptersBySubject)
}

// Categories

func (api *catalogApi) categoryList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Categories())
}

func (api *catalogApi) categoryCreate(ctx echo.Context) error {
	data := new(catalog.NewCategory)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	cat, err := api.service.CreateCategory(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, cat)
}

func (api *catalogApi) categoryUpdate(ctx echo.Context) error {
	data := new(catalog.UpdateCategory)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	cat, err := api.service.UpdateCategory(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, cat)
}

func (api *catalogApi) categoryDelete(ctx echo.Context) error {
	if err := api.service.DeleteCategory(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Subcategories

func (api *catalogApi) subcategoryList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Subcategories())
}

func (api *catalogApi) subcategoriesByCategory(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.SubcategoriesByCategory(ctx.Param("categoryId")))
}

func (api *catalogApi) subcategoryCreate(ctx echo.Context) error {
	data := new(catalog.NewSubcategory)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	sub, err := api.service.CreateSubcategory(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, sub)
}

func (api *catalogApi) subcategoryUpdate(ctx echo.Context) error {
	data := new(catalog.UpdateSubcategory)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	sub, err := api.service.UpdateSubcategory(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, sub)
}

func (api *catalogApi) subcategoryDelete(ctx echo.Context) error {
	if err := api.service.DeleteSubcategory(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Subjects

func (api *catalogApi) subjectList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Subjects())
}

func (api *catalogApi) subjectsBySubcategory(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.SubjectsBySubcategory(ctx.Param("subcategoryId")))
}

func (api *catalogApi) subjectCreate(ctx echo.Context) error {
	data := new(catalog.NewSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	subj, err := api.service.CreateSubject(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, subj)
}

func (api *catalogApi) subjectUpdate(ctx echo.Context) error {
	data := new(catalog.UpdateSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	subj, err := api.service.UpdateSubject(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, subj)
}

func (api *catalogApi) subjectDelete(ctx echo.Context) error {
	if err := api.service.DeleteSubject(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Chapters

func (api *catalogApi) chapterList(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Chapters())
}

func (api *catalogApi) chaptersBySubject(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.ChaptersBySubject(ctx.Param("subjectId")))
}

func (api *catalogApi) chapterCreate(ctx echo.Context) error {
	data := new(catalog.NewChapter)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	chap, err := api.service.CreateChapter(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, chap)
}

func (api *catalogApi) chapterUpdate(ctx echo.Context) error {
	data := new(catalog.UpdateChapter)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	chap, err := api.service.UpdateChapter(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, chap)
}

func (api *catalogApi) chapterDelete(ctx echo.Context) error {
	if err := api.service.DeleteChapter(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
