package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	err error
}

func (r stubRow) Scan(...any) error { return r.err }

type stubDB struct {
	rowErr   error
	execSQL  []string
	execArgs [][]any
}

func (d *stubDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.execSQL = append(d.execSQL, sql)
	d.execArgs = append(d.execArgs, args)
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (d *stubDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *stubDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return stubRow{err: d.rowErr}
}

func TestTranslateError(t *testing.T) {
	boom := errors.New("connection reset")
	serialization := &pgconn.PgError{Code: "40001"}
	cases := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: pgx.ErrNoRows, want: ErrNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: ErrDuplicate},
		{name: "malformed uuid", in: &pgconn.PgError{Code: "22P02"}, want: ErrNotFound},
		{name: "other pg error", in: serialization, want: serialization},
		{name: "unknown", in: boom, want: boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translateError(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
	if err := translateError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestLookupsWithMalformedIDAreNotFound(t *testing.T) {
	db := &stubDB{rowErr: &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}}

	if _, err := (&ticketRepository{db: db}).GetByID(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ticket lookup: expected ErrNotFound, got %v", err)
	}
	if _, err := (&ticketRepository{db: db}).GetByIDForUpdate(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ticket lock: expected ErrNotFound, got %v", err)
	}
	if _, err := (&userRepository{db: db}).GetByID(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("user lookup: expected ErrNotFound, got %v", err)
	}
}

func TestLockHierarchyTakesAdvisoryLock(t *testing.T) {
	db := &stubDB{}
	if err := (&userRepository{db: db}).LockHierarchy(context.Background()); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "pg_advisory_xact_lock") {
		t.Fatalf("unexpected statements %v", db.execSQL)
	}
	if db.execArgs[0][0] != managerTreeLockKey {
		t.Fatalf("expected lock key %d, got %v", managerTreeLockKey, db.execArgs[0][0])
	}
}
