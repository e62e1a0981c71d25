package dto

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"conftrack/internal/model"
)

const internalErrorDesc = "Service is currently unavailable. Please try again later."

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldError reports a single failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Msg   string `json:"msg"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// Pagination is the block every paginated list response carries.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives totalPages as ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type UploadResponse struct {
	Message      string `json:"message"`
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

type EventWithCount struct {
	model.Event
	ActivityCount int `json:"activity_count"`
}

type EventDetailResponse struct {
	model.Event
	Statistics model.EventStats `json:"statistics"`
}

type MediaListResponse struct {
	Media      []model.Media `json:"media"`
	Pagination Pagination    `json:"pagination"`
}

type UserListResponse struct {
	Users      []model.User `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

type TokenResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func SuccessMessage(c *ginext.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func BadRequestError(c *ginext.Context, desc string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: desc})
}

func ValidationFailed(c *ginext.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
}

func NotFoundError(c *ginext.Context, desc string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: desc})
}

func ConflictError(c *ginext.Context, desc string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: desc})
}

func UnauthorizedError(c *ginext.Context, desc string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: desc})
}

// InternalServerError deliberately hides the storage failure detail; the
// real error is logged server-side.
func InternalServerError(c *ginext.Context) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorDesc})
}
