package handler

import (
	"net/http"

	"finicky/internal/models"
	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupHighScore struct {
	container *do.Injector
}

func (gr *groupHighScore) Table(c echo.Context) error {
	serviceHighScore, err := do.Invoke[*services.ServiceHighScore](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	table, err := serviceHighScore.GetHighScores(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceError(err))
	}

	return c.JSON(http.StatusOK, table)
}

func (gr *groupHighScore) Submit(c echo.Context) error {
	serviceHighScore, err := do.Invoke[*services.ServiceHighScore](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload models.HighScore
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	result, err := serviceHighScore.SubmitScore(c.Request().Context(), &payload)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceError(err))
	}

	return c.JSON(http.StatusOK, result)
}
