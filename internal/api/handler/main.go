package handler

import (
	"net/http"

	"finicky/internal/interfaces"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
	// TallyRateLimit is the number of tallies allowed per client IP and second; 0 disables it.
	TallyRateLimit int
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${id}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🐱")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Origins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			MaxAge:       60 * 60,
		})
		routesAPIv1.Use(cors)

		s := groupSession{cfg.Container}
		routesAPIv1.GET("/session", s.Issue)

		t := groupTally{cfg.Container}
		tallyMiddlewares := []echo.MiddlewareFunc{}
		if cfg.TallyRateLimit > 0 {
			limiter, err := do.Invoke[interfaces.Limiter](cfg.Container)
			if err != nil {
				return nil, err
			}
			tallyMiddlewares = append(tallyMiddlewares, RateLimit(limiter, redis_rate.PerSecond(cfg.TallyRateLimit)))
		}
		routesAPIv1.Match([]string{http.MethodGet, http.MethodPost}, "/tally", t.Tally, tallyMiddlewares...)

		sc := groupScorecard{cfg.Container}
		routesAPIv1.GET("/score", sc.Show)

		h := groupHighScore{cfg.Container}
		routesAPIv1.GET("/highscore", h.Table)
		routesAPIv1.POST("/highscore", h.Submit)

		rs := groupReset{cfg.Container}
		routesAPIv1.POST("/reset", rs.Reset)
	}

	return r, nil
}
