package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tenant schemas are provisioned as tenant_<slug>; anything else must never
// reach a SET statement, since search_path cannot take bound parameters.
var schemaNamePattern = regexp.MustCompile(`^tenant_[a-z0-9_]+$`)

var ErrInvalidSchemaName = errors.New("invalid tenant schema name")

const resetTimeout = 5 * time.Second

// SchemaExecutor binds pooled connections to tenant schemas for the duration
// of one scoped call. It pins a single *sql.Conn so the search_path session
// state cannot be observed by any other in-flight operation, and it layers a
// gorm session over the pinned connection so callers keep the usual API.
type SchemaExecutor struct {
	db *sql.DB
}

func NewSchemaExecutor(gormDB *gorm.DB) (*SchemaExecutor, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return &SchemaExecutor{db: sqlDB}, nil
}

// WithTenantSchema acquires a connection, sets its search path to
// `<schemaName>, public`, runs fn on a gorm session bound to that connection
// and resets the search path to public before releasing it. The reset runs on
// every exit path, including fn errors, panics and caller cancellation; a
// reset failure marks the connection broken so the pool destroys it instead
// of handing another tenant a connection with a stale search path.
func (e *SchemaExecutor) WithTenantSchema(ctx context.Context, schemaName string, fn func(tx *gorm.DB) error) (err error) {
	if !schemaNamePattern.MatchString(schemaName) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	bound := false
	defer func() {
		if p := recover(); p != nil {
			e.release(conn, bound)
			panic(p)
		}
		if releaseErr := e.release(conn, bound); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	// Identifier is interpolated, not bound: the allow-list above is the only
	// thing standing between user-influenced input and this statement.
	if _, err = conn.ExecContext(ctx, fmt.Sprintf(`SET search_path TO "%s", public`, schemaName)); err != nil {
		return fmt.Errorf("failed to bind schema %s: %w", schemaName, err)
	}
	bound = true

	scoped, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: conn}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open scoped session: %w", err)
	}

	return fn(scoped.WithContext(ctx))
}

// release resets the search path and returns the connection to the pool. The
// reset uses a context detached from the caller so a cancelled request cannot
// skip cleanup.
func (e *SchemaExecutor) release(conn *sql.Conn, bound bool) error {
	var resetErr error
	if bound {
		resetCtx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()
		if _, resetErr = conn.ExecContext(resetCtx, `SET search_path TO public`); resetErr != nil {
			// The connection still carries a tenant search path. Returning
			// ErrBadConn from Raw marks it broken so the pool drops it.
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
			resetErr = fmt.Errorf("failed to reset search path, discarding connection: %w", resetErr)
		}
	}

	if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, driver.ErrBadConn) && resetErr == nil {
		return closeErr
	}
	return resetErr
}
