package postgres

import (
	"database/sql"
	"errors"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

// store binds a connection to the placeholder dialect of its driver. The same
// repositories serve Postgres and SQLite.
type store struct {
	db      *sqlx.DB
	dialect qb.Dialect
}

func newStore(db *sqlx.DB, dialect qb.Dialect) store {
	if dialect == "" {
		dialect = qb.DialectPostgres
	}
	return store{db: db, dialect: dialect}
}

func (s store) rebind(query string) string {
	return qb.Rebind(s.dialect, query)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func encodePicks(picks pickem.Pick) (sql.NullString, error) {
	if picks == nil {
		return sql.NullString{}, nil
	}
	raw, err := sonic.MarshalString(map[string]string(picks))
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: raw, Valid: true}, nil
}

// decodePicks reports ok=false for a stored value that is not a JSON object
// of strings.
func decodePicks(raw sql.NullString) (pickem.Pick, bool) {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil, true
	}
	out := make(map[string]string)
	if err := sonic.UnmarshalString(raw.String, &out); err != nil {
		return nil, false
	}
	return pickem.Pick(out), true
}

func encodeFeatureSide(side *pickem.FeatureSide) sql.NullString {
	if side == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*side), Valid: true}
}

func decodeFeatureSide(raw sql.NullString) (*pickem.FeatureSide, bool) {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil, true
	}
	side, err := pickem.ParseFeatureSide(raw.String)
	if err != nil {
		return nil, false
	}
	return &side, true
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
