package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"finicky/internal/datastore"
	"finicky/internal/datastore/redis_store"
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
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandImportRedis(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the tables of the postgres store",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableKVEntry(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration done")
			return nil
		},
	}
}

func commandImportRedis() *cli.Command {
	return &cli.Command{
		Name:  "import-redis",
		Usage: "copy scorecards and the high score table from REDIS_URL into the postgres store",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			postgresDB, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			redisDB, err := db.InitRedis(&db.RedisConfig{
				URL: os.Getenv("REDIS_URL"),
			})
			if err != nil {
				log.Fatal(err)
			}

			copied, err := datastore.CopyGameKeys(ctx, redis_store.NewStore(redisDB), datastore.NewKVStore(postgresDB))
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Imported keys:", copied)
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
