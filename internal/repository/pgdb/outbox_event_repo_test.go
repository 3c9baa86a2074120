package pgdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresDuplicate(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !postgresDuplicate(dup) {
		t.Fatal("wrapped 23505 must be detected")
	}
	if postgresDuplicate(&pgconn.PgError{Code: "23503"}) || postgresDuplicate(errors.New("23505")) {
		t.Fatal("only unique violations count")
	}
}
