package io

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/util"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"github.com/spf13/cast"
)

// Default database connection and query timeout.
const defaultDbTimeout = 30 * time.Second

// Querier is the part of a pgx connection used to read rows; pgxmock implements it too.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pgxConnectFunc opens a connection and returns it with its close function. Overridden in tests.
var pgxConnectFunc = func(ctx context.Context, connStr string) (Querier, func(context.Context) error, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Close, nil
}

// PostgresSource reads DCS export records from a SQL query. Each result row is one record,
// columns in select order.
type PostgresSource struct {
	connStr string
	query   string
	timeout time.Duration
}

// NewPostgresSource creates a source; connStr may reference environment variables.
func NewPostgresSource(connStr, query string) *PostgresSource {
	return &PostgresSource{connStr: connStr, query: query, timeout: defaultDbTimeout}
}

// Describe returns the masked connection string.
func (ps *PostgresSource) Describe() string {
	return util.MaskCredentials(util.ExpandEnvUniversal(ps.connStr))
}

// Records connects, runs the query and stringifies every value.
func (ps *PostgresSource) Records(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, ps.timeout)
	defer cancel()

	connStr := util.ExpandEnvUniversal(ps.connStr)
	q, closeFn, err := pgxConnectFunc(ctx, connStr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, eris.Wrapf(err, "connection to %s timed out", util.MaskCredentials(connStr))
		}
		return nil, eris.Wrapf(err, "failed to connect to %s", util.MaskCredentials(connStr))
	}
	defer func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(context.Background()); err != nil {
			logging.Logf(logging.Warning, "PostgresSource failed to close connection: %v", err)
		}
	}()
	return QueryRecords(ctx, q, ps.query)
}

// QueryRecords runs query on q and converts each row to strings. NULL becomes "".
func QueryRecords(ctx context.Context, q Querier, query string) ([][]string, error) {
	logging.Logf(logging.Debug, "PostgresSource running query: %s", query)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "source query failed")
	}
	defer rows.Close()

	records := make([][]string, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read values of row %d", len(records)+1)
		}
		rec := make([]string, len(values))
		for i, v := range values {
			rec[i] = valueToString(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating source rows")
	}
	logging.Logf(logging.Debug, "PostgresSource read %d records", len(records))
	return records, nil
}

func valueToString(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
