package service

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/dto"
	"conftrack/internal/rabbit"
	"conftrack/internal/repo"
	"conftrack/pkg/validator"
)

type Service interface {
	SignUp(ctx *ginext.Context)
	SignIn(ctx *ginext.Context)

	GetActivities(ctx *ginext.Context)
	GetActivity(ctx *ginext.Context)
	CreateActivity(ctx *ginext.Context)
	AddFavorite(ctx *ginext.Context)
	RemoveFavorite(ctx *ginext.Context)
	RegisterForActivity(ctx *ginext.Context)
	CancelRegistration(ctx *ginext.Context)

	GetAllEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	CreateEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)

	GetMedia(ctx *ginext.Context)
	UploadMedia(ctx *ginext.Context)
	DeleteMedia(ctx *ginext.Context)

	GetProfile(ctx *ginext.Context)
	GetUserFavorites(ctx *ginext.Context)
	GetUserRegistrations(ctx *ginext.Context)
	GetUsers(ctx *ginext.Context)
}

// Config carries the non-storage settings the handlers need.
type Config struct {
	JWTSecret      string
	TokenTTL       time.Duration
	UploadDir      string
	MaxUploadBytes int64
}

type service struct {
	repo repo.Repository
	log  *zerolog.Logger
	rbt  *rabbit.Client
	cfg  Config
}

func NewService(repository repo.Repository, logger *zerolog.Logger, rbt *rabbit.Client, cfg Config) Service {
	return &service{
		repo: repository,
		log:  logger,
		rbt:  rbt,
		cfg:  cfg,
	}
}

// currentUserID returns the caller id set by the auth middleware, nil on
// the anonymous path.
func currentUserID(ctx *ginext.Context) *int64 {
	if id, ok := middleware.CurrentUserID(ctx); ok {
		return &id
	}
	return nil
}

// validateRequest runs the struct rules and writes the per-field 400
// response itself; callers stop when it returns false.
func (s *service) validateRequest(ctx *ginext.Context, req any) bool {
	verrs := validator.Validate(ctx, req)
	if len(verrs) == 0 {
		return true
	}

	fields := make([]dto.FieldError, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, dto.FieldError{Field: ve.Field, Rule: ve.Rule, Msg: ve.Message})
	}
	s.log.Debug().Int("fields", len(fields)).Msg("request validation failed")
	dto.ValidationFailed(ctx, fields)
	return false
}
