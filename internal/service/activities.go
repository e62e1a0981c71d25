package service

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/dto"
	"conftrack/internal/model"
	"conftrack/internal/repo"
)

func (s *service) GetActivities(ctx *ginext.Context) {
	filter := dto.ActivityFilterFromQuery(ctx.Request.URL.Query())

	activities, err := s.repo.GetActivities(ctx, filter, currentUserID(ctx))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get activities")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, activities)
}

func (s *service) GetActivity(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid activity ID")
		return
	}

	activity, err := s.repo.GetActivityByID(ctx, id, currentUserID(ctx))
	if err != nil {
		if errors.Is(err, repo.ErrActivityNotFound) {
			dto.NotFoundError(ctx, "Activity not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to get activity")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, activity)
}

func (s *service) CreateActivity(ctx *ginext.Context) {
	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if !s.validateRequest(ctx, req) {
		return
	}
	if req.EventID == 0 {
		req.EventID = dto.DefaultEventID
	}

	activity := &model.Activity{
		EventID:      req.EventID,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Introduction: req.Introduction,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Room:         req.Room,
		Floor:        req.Floor,
		Type:         req.Type,
		Category:     req.Category,
		Capacity:     req.Capacity,
	}

	id, err := s.repo.CreateActivity(ctx, activity)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create activity")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("activity_id", id).Msg("activity created")
	dto.SuccessCreatedResponse(ctx, dto.CreatedResponse{Message: "Activity created successfully", ID: id})
}

func (s *service) AddFavorite(ctx *ginext.Context) {
	activityID, userID, ok := mutationArgs(ctx)
	if !ok {
		return
	}

	if err := s.repo.AddFavorite(ctx, userID, activityID); err != nil {
		switch {
		case errors.Is(err, repo.ErrActivityNotFound):
			dto.NotFoundError(ctx, "Activity not found")
		case errors.Is(err, repo.ErrAlreadyFavorite):
			dto.ConflictError(ctx, "Already in favorites")
		default:
			s.log.Error().Err(err).Msg("failed to add favorite")
			dto.InternalServerError(ctx)
		}
		return
	}
	dto.SuccessMessage(ctx, "Added to favorites")
}

func (s *service) RemoveFavorite(ctx *ginext.Context) {
	activityID, userID, ok := mutationArgs(ctx)
	if !ok {
		return
	}

	if err := s.repo.RemoveFavorite(ctx, userID, activityID); err != nil {
		if errors.Is(err, repo.ErrNotFavorite) {
			dto.NotFoundError(ctx, "Not in favorites")
			return
		}
		s.log.Error().Err(err).Msg("failed to remove favorite")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessMessage(ctx, "Removed from favorites")
}

func (s *service) RegisterForActivity(ctx *ginext.Context) {
	activityID, userID, ok := mutationArgs(ctx)
	if !ok {
		return
	}

	if err := s.repo.RegisterTx(ctx, userID, activityID); err != nil {
		switch {
		case errors.Is(err, repo.ErrActivityNotFound):
			dto.NotFoundError(ctx, "Activity not found")
		case errors.Is(err, repo.ErrActivityFull):
			dto.ConflictError(ctx, "Activity is full")
		case errors.Is(err, repo.ErrAlreadyRegistered):
			dto.ConflictError(ctx, "Already registered")
		default:
			s.log.Error().Err(err).Msg("failed to register for activity")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().Int64("user_id", userID).Int64("activity_id", activityID).Msg("registration created")
	s.publishRegistrationNotice(ctx, userID, activityID)
	dto.SuccessMessage(ctx, "Successfully registered")
}

func (s *service) CancelRegistration(ctx *ginext.Context) {
	activityID, userID, ok := mutationArgs(ctx)
	if !ok {
		return
	}

	if err := s.repo.Unregister(ctx, userID, activityID); err != nil {
		if errors.Is(err, repo.ErrNotRegistered) {
			dto.NotFoundError(ctx, "Not registered")
			return
		}
		s.log.Error().Err(err).Msg("failed to cancel registration")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessMessage(ctx, "Registration cancelled")
}

// publishRegistrationNotice hands the confirmation e-mail to the worker.
// Failures are logged and swallowed: the registration itself already
// committed.
func (s *service) publishRegistrationNotice(ctx *ginext.Context, userID, activityID int64) {
	activity, err := s.repo.GetActivityByID(ctx, activityID, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load activity for notification")
		return
	}

	email := ctx.GetString(middleware.ContextKeyEmail)
	if email == "" {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to load user for notification")
			return
		}
		email = user.Email
	}

	msg := dto.RegistrationNoticeMessage{
		UserID:     userID,
		ActivityID: activityID,
		Email:      email,
		Title:      activity.Title,
		Date:       activity.Date,
		StartTime:  activity.StartTime,
		Room:       activity.Room,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal registration notice")
		return
	}
	if err := s.rbt.Publish(ctx, payload); err != nil {
		s.log.Error().Err(err).Msg("failed to publish registration notice")
	}
}

// mutationArgs extracts the activity id and caller id shared by every
// favorite/registration mutation; it writes the error response itself.
func mutationArgs(ctx *ginext.Context) (activityID, userID int64, ok bool) {
	activityID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid activity ID")
		return 0, 0, false
	}
	userID, found := middleware.CurrentUserID(ctx)
	if !found {
		dto.UnauthorizedError(ctx, "Authentication required")
		return 0, 0, false
	}
	return activityID, userID, true
}
