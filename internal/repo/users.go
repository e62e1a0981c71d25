package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conftrack/internal/dto"
	"conftrack/internal/model"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, phone, organization, created_at`

func (r *repository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role, phone, organization)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Phone, u.Organization,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (r *repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.Phone, &u.Organization, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *repository) GetUsers(ctx context.Context, filter dto.UserFilter, page dto.PageParams) ([]model.User, int, error) {
	b := newSelect(
		`id, email, first_name, last_name, role, phone, organization, created_at`,
		`users`,
	)
	if filter.Role != "" {
		b.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b.Where("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", pattern, pattern, pattern)
	}
	b.OrderBy("created_at DESC")

	query, params := b.PagedSQL(page.Limit, page.Offset())
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Phone, &u.Organization, &u.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countParams := b.CountSQL("users")
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countParams...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

const joinedActivityColumns = `a.id, a.event_id, a.title, a.subtitle, a.description, a.introduction,
	a.date, a.start_time, a.end_time, a.room, a.floor, a.type, a.category, a.capacity, a.created_at`

func (r *repository) GetUserFavorites(ctx context.Context, userID int64) ([]model.FavoriteActivity, error) {
	query := `
		SELECT ` + joinedActivityColumns + `, f.created_at AS favorited_at
		FROM favorites f
		JOIN activities a ON f.activity_id = a.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteActivity, 0)
	for rows.Next() {
		var f model.FavoriteActivity
		if err := rows.Scan(
			&f.ID, &f.EventID, &f.Title, &f.Subtitle, &f.Description, &f.Introduction,
			&f.Date, &f.StartTime, &f.EndTime, &f.Room, &f.Floor, &f.Type, &f.Category,
			&f.Capacity, &f.CreatedAt, &f.FavoritedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Presenters = make([]model.Presenter, 0)
		f.IsFavorite = true
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *repository) GetUserRegistrations(ctx context.Context, userID int64) ([]model.RegisteredActivity, error) {
	query := `
		SELECT ` + joinedActivityColumns + `, r.status, r.registered_at
		FROM registrations r
		JOIN activities a ON r.activity_id = a.id
		WHERE r.user_id = $1
		ORDER BY a.date, a.start_time
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]model.RegisteredActivity, 0)
	for rows.Next() {
		var reg model.RegisteredActivity
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.Title, &reg.Subtitle, &reg.Description, &reg.Introduction,
			&reg.Date, &reg.StartTime, &reg.EndTime, &reg.Room, &reg.Floor, &reg.Type, &reg.Category,
			&reg.Capacity, &reg.CreatedAt, &reg.Status, &reg.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		reg.Presenters = make([]model.Presenter, 0)
		reg.IsRegistered = true
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}
