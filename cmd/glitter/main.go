package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/config"
	"github.com/serabi/organized-glitter-sub007/internal/database"
	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
	"github.com/serabi/organized-glitter-sub007/internal/filters"
	"github.com/serabi/organized-glitter-sub007/internal/service"
	"github.com/serabi/organized-glitter-sub007/internal/session"
	"github.com/serabi/organized-glitter-sub007/internal/tui"
)

func main() {
	var (
		openLink = flag.String("open", "", "deep link query, e.g. \"status=progress&company=Diamond Art Club\"")
		device   = flag.String("device", "desktop", "form factor for defaults: desktop or phone")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	projectRepo := repository.NewProjectRepo(db)
	tagRepo := repository.NewTagRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	noteRepo := repository.NewProgressNoteRepo(db)

	// services
	importer := &service.ImportService{Projects: projectRepo, Tags: tagRepo}
	exporter := &service.ExportService{Projects: projectRepo}

	dev := deviceClass(*device)
	query, err := url.ParseQuery(*openLink)
	if err != nil {
		log.Fatalf("bad -open query: %v", err)
	}

	userID := database.LocalUserID
	tags, err := tagRepo.List(ctx, userID)
	if err != nil {
		log.Fatalf("load tags: %v", err)
	}

	store := session.NewStore(dev)
	stats := session.NewStatsProjector(projectRepo, logger, userID)

	pageSize := cfg.UI.PageSizeDesktop
	if dev == filters.DevicePhone {
		pageSize = cfg.UI.PageSizePhone
	}

	reconciler := session.NewReconciler(store, settingsRepo, logger, cfg.Snapshot.MaxAge)
	res := reconciler.Reconcile(ctx, session.ReconcileInput{
		UserID:   userID,
		Query:    query,
		Device:   dev,
		Now:      time.Now(),
		Tags:     tags,
		PageSize: pageSize,
	})
	for _, p := range res.DroppedParams {
		logger.Info("ignored deep link parameter", zap.String("param", p))
	}

	app := tui.New(ctx, cfg, dev, userID,
		tui.Repos{Projects: projectRepo, Tags: tagRepo, Notes: noteRepo},
		tui.Services{Importer: importer, Exporter: exporter},
		store, stats,
	)

	saver := session.NewAutoSaver(store, settingsRepo, logger, session.AutoSaveConfig{
		EnableDelay: cfg.Autosave.EnableDelay,
		MinInterval: cfg.Autosave.MinInterval,
	}, app.ScrollPosition)
	saver.MarkInitialized(userID)
	defer saver.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}

	// Write out any state still sitting in the debounce window.
	saver.Flush()
}

func deviceClass(name string) filters.DeviceClass {
	if strings.EqualFold(strings.TrimSpace(name), "phone") {
		return filters.DevicePhone
	}
	return filters.DeviceDesktop
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	dir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// The TUI owns the terminal, so logs go to a file next to the db.
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{filepath.Join(dir, "glitter.log")}
	zc.ErrorOutputPaths = zc.OutputPaths
	return zc.Build()
}
