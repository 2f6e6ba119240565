package handlers

import "github.com/labstack/echo/v4"

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// respond wraps payloads in the `{success, data}` envelope expected by the
// frontend; failures are enveloped by the app HTTP error handler.
func respond(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, successResponse{Success: true, Data: data})
}
