package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/pickem-pool/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	postgresDriverName = "postgres"
	dbPingTimeout      = 5 * time.Second
	maxSpanQueryLength = 512
)

// postgresDSN is a connection string plus the database name reported on spans.
type postgresDSN struct {
	conn   string
	dbName string
}

// parsePostgresDSN accepts both URL and key=value connection strings. The
// prepared-binary flag is only added to URL strings that do not set it.
func parsePostgresDSN(raw string, disablePreparedBinary bool) postgresDSN {
	raw = strings.TrimSpace(raw)
	dsn := postgresDSN{conn: raw}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		for _, field := range strings.Fields(raw) {
			if name, ok := strings.CutPrefix(field, "dbname="); ok {
				dsn.dbName = strings.Trim(name, `"'`)
			}
		}
		return dsn
	}

	dsn.dbName = strings.TrimPrefix(parsed.Path, "/")
	if disablePreparedBinary {
		q := parsed.Query()
		if q.Get("disable_prepared_binary_result") == "" {
			q.Set("disable_prepared_binary_result", "yes")
			parsed.RawQuery = q.Encode()
			dsn.conn = parsed.String()
		}
	}
	return dsn
}

// spanQuery collapses whitespace so multi-line statements read on one line
// in traces, cut to maxSpanQueryLength bytes.
func spanQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxSpanQueryLength {
		return query[:maxSpanQueryLength] + "..."
	}
	return query
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}

	dsn := parsePostgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(spanQuery),
	}
	if dsn.dbName != "" {
		opts = append(opts, otelsql.WithDBName(dsn.dbName))
	}

	db, err := otelsqlx.Open(postgresDriverName, dsn.conn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
