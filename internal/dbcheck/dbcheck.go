// Package dbcheck verifies that the database behind the course's interactive
// services is reachable with the resolved dburl.
package dbcheck

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/retry"
)

// Result describes a successful check.
type Result struct {
	ServerVersion string
	Latency       time.Duration
}

// Redact hides the password in a database URL for display.
func Redact(dburl string) string {
	u, err := url.Parse(dburl)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

// Ping connects to dburl and queries the server version.
func Ping(ctx context.Context, dburl string) (*Result, error) {
	u, err := url.Parse(dburl)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return nil, ferrors.ValidationError(fmt.Sprintf("dburl %s is not a postgres URL", Redact(dburl))).Build()
	}

	start := time.Now()
	gdb, err := gorm.Open(postgres.Open(dburl), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "failed to connect to database").
			WithContext("dburl", Redact(dburl)).
			Build()
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "failed to obtain database handle").Build()
	}
	defer func() {
		_ = sdb.Close()
	}()

	if err := sdb.PingContext(ctx); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "database ping failed").
			WithContext("dburl", Redact(dburl)).
			Build()
	}

	var version string
	if err := gdb.WithContext(ctx).Raw("SHOW server_version").Scan(&version).Error; err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDatabase, "failed to query server version").Build()
	}
	return &Result{ServerVersion: version, Latency: time.Since(start)}, nil
}

// PingWithRetry is Ping retried under policy, for databases still starting up.
// A malformed URL is not retried.
func PingWithRetry(ctx context.Context, dburl string, policy retry.Policy) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid retry policy").Build()
	}
	var res *Result
	err := retry.Do(ctx, policy, "dbcheck", func(ctx context.Context) error {
		var err error
		res, err = Ping(ctx, dburl)
		if ferrors.HasCategory(err, ferrors.CategoryValidation) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
