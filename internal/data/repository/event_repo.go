package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrVersionConflict reports that a version-guarded write lost a race with a
// concurrent writer. Callers re-read the aggregate and retry.
var ErrVersionConflict = errors.New("event was modified concurrently")

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, limit, offset int, category *string, activeOnly bool) ([]*entity.Event, error)
	CountAll(ctx context.Context, category *string, activeOnly bool) (int64, error)
	// Update persists the whole aggregate guarded by the version the event
	// was loaded with; ErrVersionConflict when the row has moved on.
	Update(ctx context.Context, event *entity.Event) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, title, description, starts_at, location, category, price,
	       total_seats, available_seats, seats, is_active, version, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	seats, err := json.Marshal(event.Seats)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	query := `
		INSERT INTO events (id, title, description, starts_at, location, category, price,
		                    total_seats, available_seats, seats, is_active, version,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.Location,
		event.Category,
		event.Price,
		event.TotalSeats,
		event.AvailableSeats,
		seats,
		event.IsActive,
		event.Version,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEventRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int, category *string, activeOnly bool) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	argIndex := 1

	if activeOnly {
		query += " AND is_active = true AND starts_at > NOW()"
	}
	if category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, *category)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY starts_at LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list events",
			zap.Error(err),
			zap.Stringp("category", category),
		)
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read event rows", zap.Error(err))
		return nil, fmt.Errorf("read event rows: %w", err)
	}

	return events, nil
}

func (r *eventRepository) CountAll(ctx context.Context, category *string, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE 1=1`
	args := []any{}

	if activeOnly {
		query += " AND is_active = true AND starts_at > NOW()"
	}
	if category != nil {
		query += " AND category = $1"
		args = append(args, *category)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	seats, err := json.Marshal(event.Seats)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, starts_at = $4, location = $5, category = $6,
		    price = $7, total_seats = $8, available_seats = $9, seats = $10,
		    is_active = $11, version = version + 1, updated_at = $12
		WHERE id = $1 AND version = $13
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.Location,
		event.Category,
		event.Price,
		event.TotalSeats,
		event.AvailableSeats,
		seats,
		event.IsActive,
		event.UpdatedAt,
		event.Version,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	event.Version++
	return nil
}

func (r *eventRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE events SET is_active = $2, version = version + 1, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set event active flag",
			zap.Error(err),
			zap.String("event_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set event %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	return nil
}

// scanEventRow works for both pgx.Row and pgx.Rows.
func scanEventRow(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	var seats []byte

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartsAt,
		&event.Location,
		&event.Category,
		&event.Price,
		&event.TotalSeats,
		&event.AvailableSeats,
		&seats,
		&event.IsActive,
		&event.Version,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(seats, &event.Seats); err != nil {
		return nil, fmt.Errorf("unmarshal seat map: %w", err)
	}

	return &event, nil
}
