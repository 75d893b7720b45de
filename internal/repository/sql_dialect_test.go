package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestLikeOperatorByDialect(t *testing.T) {
	cases := map[string]string{
		"sqlite":     "LIKE",
		"postgres":   "ILIKE",
		"PostgreSQL": "ILIKE",
		"":           "LIKE",
	}
	for dialect, want := range cases {
		if got := likeOperatorByDialect(dialect); got != want {
			t.Fatalf("dialect %q want %s got %s", dialect, want, got)
		}
	}
}

func TestBuildLikeCondition(t *testing.T) {
	condition, args := buildLikeCondition(nil, " ada ", "email", "", "full_name")
	if condition != "email LIKE ? OR full_name LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if len(args) != 2 || args[0] != "%ada%" {
		t.Fatalf("unexpected args: %v", args)
	}

	condition, args = buildLikeCondition(nil, "   ", "email")
	if condition != "" || args != nil {
		t.Fatalf("blank keyword should produce empty condition, got %q %v", condition, args)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm translated", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres other", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "sqlite text", err: errors.New("constraint failed: UNIQUE constraint failed: votes.student_id, votes.election_id (2067)"), want: true},
		{name: "postgres text", err: errors.New(`ERROR: duplicate key value violates unique constraint "idx_votes_student_election"`), want: true},
		{name: "other", err: errors.New("database is locked"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKeyError(tc.err); got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
	if !errors.Is(translateWriteError(gorm.ErrDuplicatedKey), ErrDuplicateKey) {
		t.Fatalf("translateWriteError should map to ErrDuplicateKey")
	}
}
