package handler

import (
	"errors"
	"net/http"

	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupScorecard struct {
	container *do.Injector
}

func (gr *groupScorecard) Show(c echo.Context) error {
	serviceScorecard, err := do.Invoke[*services.ServiceScorecard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ulid := c.QueryParam("ulid")
	if ulid == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("ulid is required"), errorx.Invalid))
	}

	scorecard := serviceScorecard.GetScorecard(c.Request().Context(), ulid)
	return c.JSON(http.StatusOK, scorecard)
}
