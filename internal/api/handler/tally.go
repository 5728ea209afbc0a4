package handler

import (
	"errors"
	"net/http"
	"net/url"

	"finicky/internal/models"
	"finicky/internal/pkg"
	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

var errMissingTallyParams = errors.New("ulid, food, and correct are required")

type groupTally struct {
	container *do.Injector
}

type tallyParams struct {
	ULID    string
	Food    string
	Correct bool
}

func parseTallyParams(query url.Values) (*tallyParams, error) {
	if !query.Has("ulid") || !query.Has("food") || !query.Has("correct") {
		return nil, errMissingTallyParams
	}

	return &tallyParams{
		ULID:    query.Get("ulid"),
		Food:    query.Get("food"),
		Correct: pkg.IsTruthy(query.Get("correct")),
	}, nil
}

func (gr *groupTally) Tally(c echo.Context) error {
	serviceScorecard, err := do.Invoke[*services.ServiceScorecard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	params, err := parseTallyParams(c.QueryParams())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	id, err := serviceScorecard.Tally(c.Request().Context(), params.ULID, params.Food, params.Correct)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceError(err))
	}

	return c.JSON(http.StatusOK, &models.TallyAck{ULID: id.String()})
}
