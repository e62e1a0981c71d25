package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wb-go/wbf/ginext"
	"golang.org/x/crypto/bcrypt"

	"conftrack/internal/dto"
	"conftrack/internal/model"
	"conftrack/internal/repo"
)

func (s *service) SignUp(ctx *ginext.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if !s.validateRequest(ctx, req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(ctx)
		return
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "participant",
		Phone:        req.Phone,
		Organization: req.Organization,
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			dto.ConflictError(ctx, "Email already registered")
			return
		}
		s.log.Error().Err(err).Msg("failed to create user")
		dto.InternalServerError(ctx)
		return
	}
	user.ID = id

	s.log.Info().Int64("user_id", id).Msg("user registered")

	token, err := s.issueToken(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to sign token")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessCreatedResponse(ctx, dto.TokenResponse{Token: token, User: *user})
}

func (s *service) SignIn(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if !s.validateRequest(ctx, req) {
		return
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.UnauthorizedError(ctx, "Invalid credentials")
			return
		}
		s.log.Error().Err(err).Msg("failed to look up user")
		dto.InternalServerError(ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		dto.UnauthorizedError(ctx, "Invalid credentials")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to sign token")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, dto.TokenResponse{Token: token, User: *user})
}

func (s *service) issueToken(u *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}
