package main

import (
	"log"
	"os"

	"finicky/internal/container"
	"finicky/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

type CronJob interface {
	Start(cronRunner *cron.Cron) error
}

func main() {
	vs, err := env.EnvsRequired(
		"REDIS_URL",
		"RESET_SCHEDULE",
	)
	if err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(container.NewContainer(vs)),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			vs := do.MustInvokeNamed[map[string]string](injector, "envs")

			serviceReset, err := do.Invoke[*services.ServiceReset](injector)
			if err != nil {
				return err
			}
			logger, err := do.Invoke[*zap.Logger](injector)
			if err != nil {
				return err
			}

			cronRunner := cron.New()

			jobs := []CronJob{
				NewResetJob(serviceReset, logger, vs["RESET_SCHEDULE"]),
			}
			for _, job := range jobs {
				if err := job.Start(cronRunner); err != nil {
					return err
				}
			}

			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}
