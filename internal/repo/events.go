package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conftrack/internal/dto"
	"conftrack/internal/model"
)

func (r *repository) GetAllEvents(ctx context.Context) ([]dto.EventWithCount, error) {
	query := `
		SELECT e.id, e.name, e.description, e.start_date, e.end_date, e.venue, e.city,
		       e.address, e.capacity, e.status, e.created_at, e.updated_at,
		       COUNT(a.id) AS activity_count
		FROM events e
		LEFT JOIN activities a ON e.id = a.event_id
		GROUP BY e.id
		ORDER BY e.start_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := make([]dto.EventWithCount, 0)
	for rows.Next() {
		var e dto.EventWithCount
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.Venue, &e.City,
			&e.Address, &e.Capacity, &e.Status, &e.CreatedAt, &e.UpdatedAt,
			&e.ActivityCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT id, name, description, start_date, end_date, venue, city,
		       address, capacity, status, created_at, updated_at
		FROM events WHERE id = $1
	`

	var e model.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.Venue, &e.City,
		&e.Address, &e.Capacity, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

// GetEventStats counts registrations of distinct users, so someone attending
// several activities of the event is counted once.
func (r *repository) GetEventStats(ctx context.Context, id int64) (*model.EventStats, error) {
	query := `
		SELECT COUNT(DISTINCT a.id) AS total_activities,
		       COUNT(DISTINCT r.user_id) AS total_registrations,
		       COUNT(DISTINCT CASE WHEN a.type = 'atelier' THEN a.id END) AS workshops,
		       COUNT(DISTINCT CASE WHEN a.type = 'conference' THEN a.id END) AS conferences
		FROM activities a
		LEFT JOIN registrations r ON a.id = r.activity_id AND r.status = 'registered'
		WHERE a.event_id = $1
	`

	var s model.EventStats
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.TotalActivities, &s.TotalRegistrations, &s.Workshops, &s.Conferences,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event statistics: %w", err)
	}
	return &s, nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (name, description, start_date, end_date, venue, city, address, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.StartDate, e.EndDate, e.Venue, e.City, e.Address, e.Capacity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, start_date = $3, end_date = $4, venue = $5,
		    city = $6, address = $7, capacity = $8, status = $9, updated_at = NOW()
		WHERE id = $10
	`

	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.Description, e.StartDate, e.EndDate, e.Venue,
		e.City, e.Address, e.Capacity, e.Status, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}
