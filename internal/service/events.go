package service

import (
	"errors"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"conftrack/internal/dto"
	"conftrack/internal/model"
	"conftrack/internal/repo"
)

func (s *service) GetAllEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get events")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, events)
}

func (s *service) GetEvent(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, "Event not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to get event")
		dto.InternalServerError(ctx)
		return
	}

	stats, err := s.repo.GetEventStats(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get event statistics")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.EventDetailResponse{Event: *event, Statistics: *stats})
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if !s.validateRequest(ctx, req) {
		return
	}

	event := &model.Event{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		City:        req.City,
		Address:     req.Address,
		Capacity:    req.Capacity,
	}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event created")
	dto.SuccessCreatedResponse(ctx, dto.CreatedResponse{Message: "Event created successfully", ID: id})
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if !s.validateRequest(ctx, req) {
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}

	event := &model.Event{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		City:        req.City,
		Address:     req.Address,
		Capacity:    req.Capacity,
		Status:      req.Status,
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, "Event not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessMessage(ctx, "Event updated successfully")
}
