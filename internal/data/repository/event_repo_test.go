package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStreamDB hands out a row stream that yields a fixed number of rows
// and then fails, the way a dropped connection surfaces mid-iteration.
type brokenStreamDB struct {
	rows      int
	streamErr error
}

func (db *brokenStreamDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &brokenStream{remaining: db.rows, err: db.streamErr}, nil
}

func (db *brokenStreamDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used")
}

func (db *brokenStreamDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used")
}

func (db *brokenStreamDB) Begin(ctx context.Context) (pgx.Tx, error) {
	panic("not used")
}

func (db *brokenStreamDB) Ping(ctx context.Context) error { return nil }

func (db *brokenStreamDB) Close() {}

type brokenStream struct {
	remaining int
	done      bool
	err       error
}

func (s *brokenStream) Next() bool {
	if s.remaining == 0 {
		s.done = true
		return false
	}
	s.remaining--
	return true
}

func (s *brokenStream) Err() error {
	if s.done {
		return s.err
	}
	return nil
}

// Scan fills each destination with a plausible value so both the event and
// ticket row shapes scan cleanly.
func (s *brokenStream) Scan(dest ...any) error {
	for _, d := range dest {
		switch v := d.(type) {
		case *uuid.UUID:
			*v = uuid.New()
		case *string:
			*v = "x"
		case *entity.EventCategory:
			*v = entity.CategoryConference
		case *entity.TicketStatus:
			*v = entity.TicketStatusBooked
		case *float64:
			*v = 1
		case *int:
			*v = 1
		case *bool:
			*v = true
		case *time.Time:
			*v = time.Now()
		case **time.Time:
			*v = nil
		case *[]byte:
			*v = []byte("[]")
		}
	}
	return nil
}

func (s *brokenStream) Close()                                       {}
func (s *brokenStream) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *brokenStream) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (s *brokenStream) Values() ([]any, error)                       { return nil, nil }
func (s *brokenStream) RawValues() [][]byte                          { return nil }
func (s *brokenStream) Conn() *pgx.Conn                              { return nil }

func TestEventFindAll_StreamErrorNotSwallowed(t *testing.T) {
	streamErr := errors.New("unexpected EOF")
	repo := NewEventRepository(&brokenStreamDB{rows: 1, streamErr: streamErr}, zap.NewNop())

	events, err := repo.FindAll(context.Background(), 10, 0, nil, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, events)
}

func TestTicketFindByEventID_StreamErrorNotSwallowed(t *testing.T) {
	streamErr := errors.New("unexpected EOF")
	repo := NewTicketRepository(&brokenStreamDB{rows: 1, streamErr: streamErr}, zap.NewNop())

	tickets, err := repo.FindByEventID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, tickets)
}
