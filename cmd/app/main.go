package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/logger"

	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	app := &cli.App{
		Name:  "fooddelivery",
		Usage: "food delivery order workflow service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before the environment is parsed"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API, the live channel and the background jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply every pending migration", Action: migrateUp},
					{Name: "down", Usage: "roll back every migration", Action: migrateDown},
				},
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true, Usage: "user id"},
					&cli.StringFlag{Name: "role", Required: true, Usage: "CUSTOMER, RESTAURANT_OWNER, RIDER or ADMIN"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: issueToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	if err = cfg.RequireJWTSecret(); err != nil {
		return err
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return pkgerrors.Wrap(err, "build logger")
	}
	defer logger.Sync(log)

	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "connect database")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return pkgerrors.Wrap(err, "get sql.DB")
	}
	defer func() { _ = sqlDB.Close() }()

	root := cmd.NewCompositionRoot(cfg, gormDB, log)
	defer root.Close()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := root.CreateHTTPServer()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("env", cfg.AppEnv),
			zap.String("live_channel", cfg.LiveChannelBackend))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return pkgerrors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	return nil
}

func migrateUp(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	return migrations.Up(cfg.DatabaseURL())
}

func migrateDown(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	return migrations.Down(cfg.DatabaseURL())
}

func issueToken(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	if err = cfg.RequireJWTSecret(); err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.String("user"))
	if err != nil {
		return err
	}
	role, err := actor.ParseRole(c.String("role"))
	if err != nil {
		return err
	}

	token, err := httpin.IssueToken(cfg.JWTSecret, userID, role, c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
