// Package app wires the Ascend engines together behind a single facade.
// CLI commands open an App, call into its services, and close it.
package app

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/app/achievement"
	"github.com/ascend-app/ascend/internal/app/backup"
	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/penalty"
	"github.com/ascend-app/ascend/internal/app/progress"
	"github.com/ascend-app/ascend/internal/app/schedule"
	"github.com/ascend-app/ascend/internal/app/shop"
	"github.com/ascend-app/ascend/internal/app/signal"
	"github.com/ascend-app/ascend/internal/app/stats"
	"github.com/ascend-app/ascend/internal/app/streak"
	"github.com/ascend-app/ascend/internal/config"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// App is the assembled application: one open database plus every engine
// wired to it.
type App struct {
	Config   config.Config
	Location *time.Location
	DB       *sqlite.DB

	Ledger       *ledger.Service
	Streaks      *streak.Service
	Stats        *stats.Service
	Signals      *signal.Service
	Achievements *achievement.Service
	Penalties    *penalty.Service
	Progress     *progress.Service
	Schedule     *schedule.Service
	Shop         *shop.Service
	Backup       *backup.Service
}

// New loads configuration, opens the store, and wires all services.
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig assembles the application from an explicit config.
func NewWithConfig(cfg config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	led := ledger.NewService(db)
	sig := signal.NewService(db)
	str := streak.NewService(db, led, loc)
	st := stats.NewService(db)
	ach := achievement.NewService(db, led, sig)
	pen := penalty.NewService(db, led, st, ach, loc)
	prog := progress.NewService(db, led, str, st, ach, sig)
	sched := schedule.NewService(db, pen, str, loc)
	sh := shop.NewService(db, led)
	bak := backup.NewService(db)

	a := &App{
		Config:       cfg,
		Location:     loc,
		DB:           db,
		Ledger:       led,
		Streaks:      str,
		Stats:        st,
		Signals:      sig,
		Achievements: ach,
		Penalties:    pen,
		Progress:     prog,
		Schedule:     sched,
		Shop:         sh,
		Backup:       bak,
	}

	if cfg.Shop.SeedDefaults {
		if err := sh.Seed(); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed shop: %w", err)
		}
	}

	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Now returns the current time in the configured calendar timezone.
func (a *App) Now() time.Time {
	return time.Now().In(a.Location)
}
