package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err      error
	deadline bool
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestDBChecker_Healthy(t *testing.T) {
	p := &fakePinger{}
	res := newDBChecker(p, time.Second).Check(context.Background())

	assert.True(t, res.Healthy)
	assert.Equal(t, "postgres", res.Storage)
	assert.Empty(t, res.Error)
	assert.True(t, p.deadline, "ping must be bounded")
}

func TestDBChecker_Unhealthy(t *testing.T) {
	p := &fakePinger{err: errors.New("dial tcp db.internal:5432: refused")}
	res := newDBChecker(p, 0).Check(context.Background())

	assert.False(t, res.Healthy)
	assert.Equal(t, "database unreachable", res.Error)
	assert.NotContains(t, res.Error, "db.internal")
}

func TestNewDBChecker_WithSQLMock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	res := NewDBChecker(db, time.Second).Check(context.Background())
	assert.True(t, res.Healthy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStaticChecker(t *testing.T) {
	res := StaticChecker{Storage: "memory"}.Check(context.Background())
	assert.Equal(t, Result{Healthy: true, Storage: "memory"}, res)
}
