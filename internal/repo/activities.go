package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conftrack/internal/dto"
	"conftrack/internal/model"
)

const activityColumns = `a.id, a.event_id, a.title, a.subtitle, a.description, a.introduction,
	a.date, a.start_time, a.end_time, a.room, a.floor, a.type, a.category, a.capacity, a.created_at,
	string_agg(p.first_name || ' ' || p.last_name || '|' || p.title || '|' || p.organization, ';') AS presenters`

const activityBaseFrom = `activities a
	LEFT JOIN activity_presenters ap ON a.id = ap.activity_id
	LEFT JOIN presenters p ON ap.presenter_id = p.id`

// activityQueryForAnonymous and activityQueryForAuthenticated share the
// base statement and emit the same column set, so row shaping never has to
// know which branch produced the row. The anonymous variant skips the
// favorites/registrations joins and hard-codes both flags to FALSE.
func activityQueryForAnonymous() *selectBuilder {
	return newSelect(
		activityColumns+`,
	FALSE AS is_favorite, FALSE AS is_registered`,
		activityBaseFrom,
	).GroupBy("a.id")
}

func activityQueryForAuthenticated(userID int64) *selectBuilder {
	return newSelect(
		activityColumns+`,
	bool_or(f.user_id IS NOT NULL) AS is_favorite, bool_or(r.user_id IS NOT NULL) AS is_registered`,
		activityBaseFrom+`
	LEFT JOIN favorites f ON a.id = f.activity_id AND f.user_id = ?
	LEFT JOIN registrations r ON a.id = r.activity_id AND r.user_id = ?`,
		userID, userID,
	).GroupBy("a.id")
}

func activityQuery(userID *int64) *selectBuilder {
	if userID == nil {
		return activityQueryForAnonymous()
	}
	return activityQueryForAuthenticated(*userID)
}

func (r *repository) GetActivities(ctx context.Context, filter dto.ActivityFilter, userID *int64) ([]model.Activity, error) {
	b := activityQuery(userID).Where("a.event_id = ?", filter.EventID)
	if filter.Date != "" {
		b.Where("a.date = ?", filter.Date)
	}
	if filter.Type != "" {
		b.Where("a.type = ?", filter.Type)
	}
	if filter.Room != "" {
		b.Where("a.room = ?", filter.Room)
	}
	b.OrderBy("a.date, a.start_time")

	query, params := b.SQL()
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (r *repository) GetActivityByID(ctx context.Context, id int64, userID *int64) (*model.Activity, error) {
	query, params := activityQuery(userID).Where("a.id = ?", id).SQL()

	a, err := scanActivity(r.db.QueryRowContext(ctx, query, params...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

func (r *repository) CreateActivity(ctx context.Context, a *model.Activity) (int64, error) {
	query := `
		INSERT INTO activities (event_id, title, subtitle, description, introduction,
		                        date, start_time, end_time, room, floor, type, category, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.EventID, a.Title, a.Subtitle, a.Description, a.Introduction,
		a.Date, a.StartTime, a.EndTime, a.Room, a.Floor, a.Type, a.Category, a.Capacity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity: %w", err)
	}
	return id, nil
}

func (r *repository) AddFavorite(ctx context.Context, userID, activityID int64) error {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM activities WHERE id = $1`, activityID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to check activity: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, activity_id) VALUES ($1, $2)`,
		userID, activityID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFavorite
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *repository) RemoveFavorite(ctx context.Context, userID, activityID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND activity_id = $2`,
		userID, activityID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFavorite
	}
	return nil
}

// RegisterTx locks the activity row before counting so the capacity check
// and the insert observe the same state. The unique constraint still backs
// up the duplicate check under concurrent adds.
func (r *repository) RegisterTx(ctx context.Context, userID, activityID int64) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var capacity *int
	err = tx.QueryRowContext(ctx, `
		SELECT capacity FROM activities WHERE id = $1 FOR UPDATE
	`, activityID).Scan(&capacity)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to select activity: %w", err)
	}

	if capacity != nil {
		var count int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM registrations
			WHERE activity_id = $1 AND status = 'registered'
		`, activityID).Scan(&count)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if count >= *capacity {
			_ = tx.Rollback()
			return ErrActivityFull
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO registrations (user_id, activity_id) VALUES ($1, $2)`,
		userID, activityID,
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *repository) Unregister(ctx context.Context, userID, activityID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE user_id = $1 AND activity_id = $2`,
		userID, activityID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove registration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotRegistered
	}
	return nil
}
