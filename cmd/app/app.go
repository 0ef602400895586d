package main

import (
	"os"

	"github.com/DRSN-tech/catalog-backend/internal/app"
	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/urfave/cli/v2"
)

//	@title			Catalog Backend API
//	@version		1.0
//	@description	CRUD каталога товаров со скидками и налогами.
//	@host			localhost:8080
//	@BasePath		/

func main() {
	log := logger.NewSlogLogger()

	cliApp := &cli.App{
		Name:  "catalog-backend",
		Usage: "product catalog service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run HTTP and gRPC servers",
				Action: func(*cli.Context) error { return serve(log) },
			},
			{
				Name:   "migrate",
				Usage:  "apply PostgreSQL migrations and exit",
				Action: func(*cli.Context) error { return migrate(log) },
			},
		},
		Action: func(*cli.Context) error { return serve(log) },
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Errorf(err, "catalog-backend failed")
		os.Exit(1)
	}
}

func serve(log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		return err
	}

	return application.Run()
}

func migrate(log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	if err := app.Migrate(cfg, log); err != nil {
		return err
	}

	log.Infof("Migrations applied")
	return nil
}
