package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/telecare-labs/accounts"
)

func main() {
	cfg, err := accounts.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDBURI())
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := accounts.CreateSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	repos := accounts.NewRepositoryManager(db)
	if err := repos.Validate(); err != nil {
		log.Fatalf("repositories: %v", err)
	}

	creds := accounts.NewCredentials(cfg)
	service := accounts.NewAccountService(repos.Users(), creds)
	guard := accounts.NewAccessGuard(creds, repos.Users())

	app := fiber.New(fiber.Config{
		AppName: "accountsd",
	})

	controller := accounts.NewAuthController(service)
	controller.RegisterRoutes(app, guard)

	if err := app.Listen(cfg.GetHTTPAddr()); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
