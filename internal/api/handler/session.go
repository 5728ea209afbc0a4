package handler

import (
	"net/http"

	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSession struct {
	container *do.Injector
}

func (gr *groupSession) Issue(c echo.Context) error {
	serviceSession, err := do.Invoke[*services.ServiceSession](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	session := serviceSession.IssueSession(c.Request().Context())
	return c.JSON(http.StatusOK, session)
}
