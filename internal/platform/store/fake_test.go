package store

import (
	"context"
	"errors"
	"time"
)

// fakeRows serves a fixed matrix of values
type fakeRows struct {
	cols []string
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return errors.New("scan arity")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return r.cols }

type fakeQuerier struct {
	rows    *fakeRows
	lastSQL string
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	q.lastSQL = sql
	return nil, nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.lastSQL = sql
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	q.lastSQL = sql
	if !q.rows.Next() {
		return errRow{errors.New("no rows in result set")}
	}
	return q.rows
}

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

type pingKV struct {
	err    error
	closed bool
}

func (p *pingKV) Get(context.Context, string) (string, bool, error)        { return "", false, nil }
func (p *pingKV) Set(context.Context, string, string, time.Duration) error { return nil }
func (p *pingKV) Incr(context.Context, string) (int64, error)              { return 1, nil }
func (p *pingKV) Ping(context.Context) error                               { return p.err }
func (p *pingKV) Close() error                                             { p.closed = true; return nil }
