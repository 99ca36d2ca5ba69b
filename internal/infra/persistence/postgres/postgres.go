// Package postgres stores users and interactions in PostgreSQL through GORM.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"helloworld/config"
	"helloworld/internal/domain/lifecycle"
	"helloworld/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval = 5 * time.Second
	poolWaitWarnAfter = 50 * time.Millisecond
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// store owns the pool behind the *gorm.DB handed to repositories.
type store struct {
	db          *gorm.DB
	pool        *sql.DB
	autoMigrate bool
	logger      *slog.Logger
	stopWatch   context.CancelFunc
}

// New opens the PostgreSQL pool. It is pinged (and migrated when
// database.autoMigrate is set) on start and closed on stop.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PostgreSQL")
	}
	// Unique violations surface as gorm.ErrDuplicatedKey.
	db.Config.TranslateError = true
	// Multi-step writes go through the transaction manager, so single
	// statements need no implicit transaction.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newSQLLogger(params.Logger, params.Config),
	})

	pool, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach PostgreSQL pool")
	}

	s := &store{
		db:          db,
		pool:        pool,
		autoMigrate: params.Config.Database.AutoMigrate,
		logger:      params.Logger,
	}
	params.Lc.Append(fx.Hook{OnStart: s.start, OnStop: s.stop})

	return db, nil
}

func (s *store) start(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := s.pool.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping PostgreSQL")
	}
	if s.autoMigrate {
		if err := Migrate(ctx, s.db); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "Database schema migrated")
	}

	watchCtx, stop := context.WithCancel(context.Background())
	s.stopWatch = stop
	go (&poolWatch{logger: s.logger}).run(watchCtx, s.pool, poolCheckInterval)

	return nil
}

func (s *store) stop(context.Context) error {
	if s.stopWatch != nil {
		s.stopWatch()
	}

	return errors.Wrap(s.pool.Close(), "failed to close PostgreSQL pool")
}

// poolWatch reports connection waits between two pool snapshots.
type poolWatch struct {
	logger *slog.Logger
}

func (w *poolWatch) run(ctx context.Context, pool *sql.DB, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := pool.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := pool.Stats()
			w.report(ctx, last, cur)
			last = cur
		}
	}
}

// report logs at warn once the waits since prev add up to poolWaitWarnAfter.
func (w *poolWatch) report(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}
	waited := cur.WaitDuration - prev.WaitDuration

	level := slog.LevelDebug
	if waited >= poolWaitWarnAfter {
		level = slog.LevelWarn
	}
	w.logger.LogAttrs(ctx, level, "Postgres pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	)
}
