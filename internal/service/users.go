package service

import (
	"errors"

	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/dto"
	"conftrack/internal/repo"
)

func (s *service) GetProfile(ctx *ginext.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		dto.UnauthorizedError(ctx, "Authentication required")
		return
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.NotFoundError(ctx, "User not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to get profile")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, user)
}

func (s *service) GetUserFavorites(ctx *ginext.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		dto.UnauthorizedError(ctx, "Authentication required")
		return
	}

	favorites, err := s.repo.GetUserFavorites(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get favorites")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, favorites)
}

func (s *service) GetUserRegistrations(ctx *ginext.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		dto.UnauthorizedError(ctx, "Authentication required")
		return
	}

	registrations, err := s.repo.GetUserRegistrations(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get registrations")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, registrations)
}

func (s *service) GetUsers(ctx *ginext.Context) {
	query := ctx.Request.URL.Query()
	filter := dto.UserFilterFromQuery(query)
	page := dto.PageParamsFromQuery(query, dto.DefaultUserLimit)

	users, total, err := s.repo.GetUsers(ctx, filter, page)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get users")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.UserListResponse{
		Users:      users,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	})
}
