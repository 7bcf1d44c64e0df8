// Package main is the entry point for the inventaris background worker.
// Runs the periodic backup sweep: one archive and one workbook per
// tenant, written to the backup directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/backup"
	"inventaris/internal/domain/reports"
	"inventaris/internal/infrastructure/storage/postgres"
	"inventaris/internal/infrastructure/storage/postgres/backup_repo"
	"inventaris/internal/infrastructure/storage/postgres/report_repo"
	"inventaris/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting inventaris backup worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	repo := backup_repo.NewBackupRepo(txManager)
	engine := reports.NewService(report_repo.NewReportRepo(txManager))
	service := backup.NewService(repo, engine, txManager)

	worker := &BackupWorker{
		repo:     repo,
		service:  service,
		dir:      getEnv("BACKUP_DIR", "./backups"),
		interval: getEnvDuration("BACKUP_INTERVAL", 7*24*time.Hour),
		log:      log.WithComponent("backup-worker"),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// BackupWorker sweeps every tenant on a fixed interval.
type BackupWorker struct {
	repo     *backup_repo.BackupRepo
	service  *backup.Service
	dir      string
	interval time.Duration
	log      *logger.Logger
}

// Run sweeps once at startup, then on every tick until the context is
// cancelled.
func (w *BackupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep backs up every tenant. A failing tenant is logged and skipped;
// one broken tenant must not starve the rest.
func (w *BackupWorker) sweep(ctx context.Context) {
	companies, err := w.repo.CompanyIDs(ctx)
	if err != nil {
		w.log.Errorw("list companies failed", "error", err)
		return
	}

	w.log.Infow("backup sweep started", "companies", len(companies))

	for _, companyID := range companies {
		if ctx.Err() != nil {
			return
		}
		if err := w.backupCompany(ctx, companyID); err != nil {
			w.log.Errorw("company backup failed", "company_id", companyID, "error", err)
			continue
		}
		w.log.Infow("company backed up", "company_id", companyID)
	}

	w.log.Info("backup sweep finished")
}

func (w *BackupWorker) backupCompany(ctx context.Context, companyID id.ID) error {
	r := dateonly.Range{Start: dateonly.MustParse("1970-01-01"), End: dateonly.Today()}

	dump, err := w.service.BuildDump(ctx, companyID, r)
	if err != nil {
		return err
	}
	report, err := w.service.ReportRows(ctx, companyID, r)
	if err != nil {
		return err
	}

	dir := filepath.Join(w.dir, companyID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	stamp := dateonly.Today().String()

	if err := writeFile(filepath.Join(dir, stamp+".json.zst"), func(f *os.File) error {
		return backup.WriteArchive(f, dump)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, stamp+".xlsx"), func(f *os.File) error {
		return backup.WriteWorkbook(f, dump, report)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
