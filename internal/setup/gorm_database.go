package setup

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/bornholm/producthub/internal/config"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

var getGormDatabaseFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*gorm.DB, error) {
	dsn, err := getSQLiteDSN(conf.Storage.URI)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dialector := gormlite.Open(dsn)

	var logLevel logger.LogLevel
	switch conf.Logger.Level {
	case slog.LevelError:
		logLevel = logger.Error
	case slog.LevelWarn:
		logLevel = logger.Warn
	case slog.LevelInfo:
		logLevel = logger.Info
	default:
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if conf.Logger.Level == slog.LevelDebug {
		db = db.Debug()
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA foreign_keys=on; PRAGMA busy_timeout=5000").Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
})

// getSQLiteDSN extracts the database file from a sqlite://<path> storage URI.
func getSQLiteDSN(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.WithStack(err)
	}

	dsn := u.Host + u.Path
	if dsn == "" {
		dsn = u.Opaque
	}

	if dsn == "" {
		return "", errors.Errorf("missing database path in storage uri '%s'", rawURL)
	}

	if u.RawQuery != "" {
		dsn += "?" + u.RawQuery
	}

	return dsn, nil
}
