// Package database provides a postgres connection pool and a GORM handle
// on top of it, both resolved lazily from the Container.
package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/logging"
)

// ErrNoURL is returned when the database section has no URL.
var ErrNoURL = errors.New("database: no url configured")

var (
	// SQLTag holds the *sql.DB connection pool.
	SQLTag = inject.NewTag[*sql.DB]("SQL")

	// DatabaseTag holds the GORM handle sharing the SQLTag pool.
	DatabaseTag = inject.NewTag[*gorm.DB]("Database")
)

// SQLProvider opens and pings a postgres pool using the database section
// of the config under ConfigTag.
type SQLProvider[C any, PC interface {
	*C
	Configurable
}] struct {
	ConfigTag *inject.Tag[*C]
}

func (p SQLProvider[C, PC]) Provide(ctx context.Context, i *inject.Container) (*sql.DB, error) {
	cfg, err := inject.GetTag(ctx, i, p.ConfigTag)
	if err != nil {
		return nil, err
	}
	dc := PC(cfg).DatabaseConfig()
	if dc.URL == "" {
		return nil, ErrNoURL
	}
	return Open(ctx, *dc)
}

// Open opens a postgres pool and checks it with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return db, nil
}

// GORMProvider wraps the pool under SQLTag with GORM.
type GORMProvider[C any, PC interface {
	*C
	Configurable
}] struct {
	ConfigTag *inject.Tag[*C]
}

func (p GORMProvider[C, PC]) Provide(ctx context.Context, i *inject.Container) (*gorm.DB, error) {
	cfg, err := inject.GetTag(ctx, i, p.ConfigTag)
	if err != nil {
		return nil, err
	}
	pool, err := inject.GetTag(ctx, i, SQLTag)
	if err != nil {
		return nil, err
	}

	log := logging.Logger(ctx, i).WithField("component", "gorm")
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool}), &gorm.Config{
		Logger: NewLogger(log, PC(cfg).DatabaseConfig().Debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open gorm")
	}
	return db, nil
}

// ── Hooks ────────────────────────────────────────────────────────────────────

// Load returns a Hook registering SQLProvider and GORMProvider. Nothing
// connects until one of the tags is requested.
func Load[C any, PC interface {
	*C
	Configurable
}](tag *inject.Tag[*C]) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		if err := inject.ProvideTag[*sql.DB](i, SQLTag, SQLProvider[C, PC]{ConfigTag: tag}); err != nil {
			return err
		}
		return inject.ProvideTag[*gorm.DB](i, DatabaseTag, GORMProvider[C, PC]{ConfigTag: tag})
	})
}

// Close returns a Shutdown Hook that drops the GORM handle and closes the
// pool. A pool still connecting is waited for, within ctx. Pools that were
// never requested are left alone.
func Close() inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		if i.Contains(DatabaseTag.Key()) {
			if err := inject.RemoveTag(i, DatabaseTag); err != nil {
				return err
			}
		}
		if !i.Started(SQLTag.Key()) {
			return nil
		}

		db, err := inject.ConsumeTag(ctx, i, SQLTag)
		if errors.Is(err, inject.ErrProvider) {
			return nil
		}
		if err != nil {
			return err
		}

		logging.Logger(ctx, i).Info("closing database pool")
		return errors.Wrap(db.Close(), "close database")
	})
}
