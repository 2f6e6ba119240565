package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core/catalog"
)

type settingsApi struct {
	service *catalog.Service
}

func RegisterSettingsAPI(g *echo.Group, svc *catalog.Service) {
	api := settingsApi{service: svc}

	sg := g.Group("/admin/settings")
	sg.GET("", api.settingsRetrieve)
	sg.PUT("", api.settingsUpdate)
}

func (api *settingsApi) settingsRetrieve(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.service.Settings())
}

func (api *settingsApi) settingsUpdate(ctx echo.Context) error {
	data := new(catalog.SettingsPatch)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	settings, err := api.service.UpdateSettings(*data)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, settings)
}
