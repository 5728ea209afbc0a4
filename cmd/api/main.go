package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"finicky/internal/api/handler"
	"finicky/internal/container"
	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired(
		"REDIS_URL",
	)
	if err != nil {
		log.Fatal(err)
	}

	injector := container.NewContainer(vs)
	defer func() {
		if logger, err := do.Invoke[*zap.Logger](injector); err == nil {
			//nolint:errcheck
			logger.Sync()
		}
	}()

	app := &cli.App{
		Name: "api",
		Commands: []*cli.Command{
			commandServer(injector),
			commandReset(injector),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandServer(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "start the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "0.0.0.0:8080",
				Usage: "serve address",
			},
		},
		Action: func(c *cli.Context) error {
			vs := do.MustInvokeNamed[map[string]string](injector, "envs")
			tallyRateLimit, err := strconv.Atoi(vs["TALLY_RATE_LIMIT_PER_SECOND"])
			if err != nil {
				return fmt.Errorf("invalid TALLY_RATE_LIMIT_PER_SECOND: %w", err)
			}

			router, err := handler.New(&handler.Config{
				Container:      injector,
				Mode:           vs["API_MODE"],
				Origins:        strings.Split(vs["API_ORIGINS"], ","),
				TallyRateLimit: tallyRateLimit,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    c.String("addr"),
				Handler: router,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errWg, errCtx := errgroup.WithContext(ctx)

			errWg.Go(func() error {
				log.Printf("ListenAndServe: %s (%s, store=%s)\n", c.String("addr"), vs["API_MODE"], vs["STORE_DRIVER"])
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})

			errWg.Go(func() error {
				<-errCtx.Done()
				return srv.Shutdown(context.TODO())
			})

			return errWg.Wait()
		},
	}
}

func commandReset(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "delete every scorecard and the high score table",
		Action: func(c *cli.Context) error {
			serviceReset, err := do.Invoke[*services.ServiceReset](injector)
			if err != nil {
				return err
			}

			deleted, err := serviceReset.Reset(c.Context)
			if err != nil {
				return err
			}

			fmt.Printf("Finicky Whiskers is reset (%d scorecards deleted).\n", deleted)
			return nil
		},
	}
}
