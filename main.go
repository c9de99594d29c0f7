// Package main is the campus facilities API: periodic scrapers for gym,
// dining, and library availability data, a Postgres snapshot store, and a
// read-only JSON API over the latest state.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Hecate946/cs130-project/app/echoServer"
	diningctrl "github.com/Hecate946/cs130-project/app/echoServer/controller/dining"
	gymctrl "github.com/Hecate946/cs130-project/app/echoServer/controller/gym"
	libraryctrl "github.com/Hecate946/cs130-project/app/echoServer/controller/library"
	"github.com/Hecate946/cs130-project/app/echoServer/validation"
	"github.com/Hecate946/cs130-project/config"
	diningrepo "github.com/Hecate946/cs130-project/repository/dining"
	gymrepo "github.com/Hecate946/cs130-project/repository/gym"
	libraryrepo "github.com/Hecate946/cs130-project/repository/library"
	"github.com/Hecate946/cs130-project/scheduler"
	diningscraper "github.com/Hecate946/cs130-project/scraper/dining"
	gymscraper "github.com/Hecate946/cs130-project/scraper/gym"
	libraryscraper "github.com/Hecate946/cs130-project/scraper/library"
	diningsvc "github.com/Hecate946/cs130-project/service/dining"
	gymsvc "github.com/Hecate946/cs130-project/service/gym"
	librarysvc "github.com/Hecate946/cs130-project/service/library"
	"github.com/Hecate946/cs130-project/service/retention"
	"github.com/Hecate946/cs130-project/util/database"
	"github.com/Hecate946/cs130-project/util/httpx"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	gr := gymrepo.New(db.Pool)
	dr := diningrepo.New(db.Pool)
	lr := libraryrepo.New(db.Pool)

	if err := lr.Seed(ctx, seedLibraries()); err != nil {
		log.Error("library seed failed", "err", err)
		os.Exit(1)
	}

	// scrapers
	client := httpx.Client()
	gsc := gymscraper.New(config.FacilityCountURL, client, log)
	dsc := diningscraper.New(config.OccuspacePrefix, config.MenusPrefix, client, log)
	lsc := libraryscraper.New(config.LibraryGridEndpoint, gridSpaces(), client, log)

	// services
	gs := gymsvc.New(gr, gsc, log)
	ds := diningsvc.New(dr, dsc, log)
	ls := librarysvc.New(lr, lsc, log)
	rs := retention.New(map[string]retention.Pruner{
		"gym_capacity_history":    gr,
		"dining_capacity_history": dr,
	}, cfg.RetentionDays, log)

	// controllers
	v := validator.New()
	gymC := &gymctrl.Controller{Svc: gs, Log: log}
	diningC := &diningctrl.Controller{Svc: ds, Log: log}
	libraryC := &libraryctrl.Controller{Svc: ls, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	echoServer.Register(e, echoServer.C{
		Gym:     gymC,
		Dining:  diningC,
		Library: libraryC,
	})

	// periodic scrape jobs, one per domain
	sched := scheduler.New(log)
	sched.Add("gym-scrape", cfg.ScrapeInterval, gs.ScrapeAndStore)
	sched.Add("dining-scrape", cfg.ScrapeInterval, ds.ScrapeAndStore)
	sched.Add("library-scrape", cfg.ScrapeInterval, ls.ScrapeAndStore)
	sched.Add("history-retention", 24*time.Hour, rs.Prune)
	sched.Start(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", "err", err)
		}
	}()

	log.Info("starting server", "port", cfg.Port, "scrape_interval", cfg.ScrapeInterval.String())
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Error("http server error", "err", err)
	}
	sched.Wait()
}

func seedLibraries() []libraryrepo.Library {
	out := make([]libraryrepo.Library, 0, len(config.LibrarySpaces))
	for _, s := range config.LibrarySpaces {
		out = append(out, libraryrepo.Library{Name: s.Name, Slug: s.Slug, Location: s.Location})
	}
	return out
}

func gridSpaces() []libraryscraper.Space {
	out := make([]libraryscraper.Space, 0, len(config.LibrarySpaces))
	for _, s := range config.LibrarySpaces {
		out = append(out, libraryscraper.Space{Slug: s.Slug, LID: s.LID, GID: s.GID, Referer: s.Referer})
	}
	return out
}
