package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/domain/attendance"
	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/domain/lineup"
	"github.com/riskibarqy/courtside/internal/domain/session"
	cacherepo "github.com/riskibarqy/courtside/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/guard"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/courtside/internal/platform/cache"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	courts     court.Repository
	bookings   booking.Repository
	sessions   session.Repository
	attendance attendance.Repository
	lineups    lineup.Repository
	close      func() error
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			courts:     postgres.NewCourtRepository(db),
			bookings:   postgres.NewBookingRepository(db),
			sessions:   postgres.NewSessionRepository(db),
			attendance: postgres.NewAttendanceRepository(db),
			lineups:    postgres.NewLineupRepository(db),
			close:      db.Close,
		}
		if cfg.DBBreakerEnabled {
			repos = repos.guarded(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
				FailureThreshold: cfg.DBBreakerFailureThreshold,
				OpenTimeout:      cfg.DBBreakerOpenTimeout,
				HalfOpenMaxReq:   1,
			}))
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)
	default:
		repos = repositories{
			courts:     memory.NewCourtRepository(memory.SeedCourts()),
			bookings:   memory.NewBookingRepository(),
			sessions:   memory.NewSessionRepository(),
			attendance: memory.NewAttendanceRepository(),
			lineups:    memory.NewLineupRepository(),
			close:      func() error { return nil },
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		repos.courts = cacherepo.NewCourtRepository(repos.courts, basecache.NewStore(cfg.CacheTTL))
		logger.Info("court cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, nil
}

// guarded routes every repository through one breaker since they share a
// connection pool.
func (r repositories) guarded(breaker *resilience.CircuitBreaker) repositories {
	r.courts = guard.NewCourtRepository(r.courts, breaker)
	r.bookings = guard.NewBookingRepository(r.bookings, breaker)
	r.sessions = guard.NewSessionRepository(r.sessions, breaker)
	r.attendance = guard.NewAttendanceRepository(r.attendance, breaker)
	r.lineups = guard.NewLineupRepository(r.lineups, breaker)
	return r
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
