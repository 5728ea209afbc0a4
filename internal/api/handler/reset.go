package handler

import (
	"net/http"

	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupReset struct {
	container *do.Injector
}

func (gr *groupReset) Reset(c echo.Context) error {
	serviceReset, err := do.Invoke[*services.ServiceReset](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if _, err := serviceReset.Reset(c.Request().Context()); err != nil {
		return httpx.RestAbort(c, nil, wrapServiceError(err))
	}

	return c.String(http.StatusOK, "Finicky Whiskers is reset.")
}
