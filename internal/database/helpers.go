package database

import (
	"database/sql"
	"fmt"
	"time"

	sqldb "github.com/a2zdsa/atlas/internal/database/sqlc"
)

// timestampLayout keeps lexical and chronological order identical.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func optionalString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}
