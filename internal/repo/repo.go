package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"conftrack/internal/dto"
	"conftrack/internal/model"
)

var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrActivityFull      = errors.New("activity is full")
	ErrAlreadyFavorite   = errors.New("already in favorites")
	ErrNotFavorite       = errors.New("not in favorites")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrEventNotFound     = errors.New("event not found")
	ErrMediaNotFound     = errors.New("media not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already taken")
)

type Repository interface {
	GetActivities(ctx context.Context, filter dto.ActivityFilter, userID *int64) ([]model.Activity, error)
	GetActivityByID(ctx context.Context, id int64, userID *int64) (*model.Activity, error)
	CreateActivity(ctx context.Context, a *model.Activity) (int64, error)
	AddFavorite(ctx context.Context, userID, activityID int64) error
	RemoveFavorite(ctx context.Context, userID, activityID int64) error
	RegisterTx(ctx context.Context, userID, activityID int64) error
	Unregister(ctx context.Context, userID, activityID int64) error

	GetAllEvents(ctx context.Context) ([]dto.EventWithCount, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetEventStats(ctx context.Context, id int64) (*model.EventStats, error)
	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error

	GetMedia(ctx context.Context, filter dto.MediaFilter, page dto.PageParams) ([]model.Media, int, error)
	GetMediaByID(ctx context.Context, id int64) (*model.Media, error)
	CreateMedia(ctx context.Context, m *model.Media) (int64, error)
	DeleteMedia(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, u *model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsers(ctx context.Context, filter dto.UserFilter, page dto.PageParams) ([]model.User, int, error)
	GetUserFavorites(ctx context.Context, userID int64) ([]model.FavoriteActivity, error)
	GetUserRegistrations(ctx context.Context, userID int64) ([]model.RegisteredActivity, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

// isUniqueViolation matches the driver error code, not the message text,
// so the benign insert race stays distinguishable from real failures.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}
