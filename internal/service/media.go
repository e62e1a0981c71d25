package service

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/dto"
	"conftrack/internal/model"
	"conftrack/internal/repo"
)

var allowedUploadTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (s *service) GetMedia(ctx *ginext.Context) {
	query := ctx.Request.URL.Query()
	filter := dto.MediaFilterFromQuery(query)
	page := dto.PageParamsFromQuery(query, dto.DefaultMediaLimit)

	media, total, err := s.repo.GetMedia(ctx, filter, page)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get media")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.MediaListResponse{
		Media:      media,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	})
}

func (s *service) UploadMedia(ctx *ginext.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		dto.BadRequestError(ctx, "No file uploaded")
		return
	}

	if file.Size > s.cfg.MaxUploadBytes {
		dto.BadRequestError(ctx, "File too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	wantMime, ok := allowedUploadTypes[ext]
	if !ok {
		dto.BadRequestError(ctx, "Invalid file type")
		return
	}
	if gotMime := file.Header.Get("Content-Type"); gotMime != "" && gotMime != wantMime {
		dto.BadRequestError(ctx, "Invalid file type")
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.log.Error().Err(err).Msg("failed to create upload directory")
		dto.InternalServerError(ctx)
		return
	}

	filename := uuid.New().String() + ext
	dstPath := filepath.Join(s.cfg.UploadDir, filename)
	if err := ctx.SaveUploadedFile(file, dstPath); err != nil {
		s.log.Error().Err(err).Msg("failed to save uploaded file")
		dto.InternalServerError(ctx)
		return
	}

	folder := ctx.PostForm("folder")
	if folder == "" {
		folder = "general"
	}

	media := &model.Media{
		Filename:     filename,
		OriginalName: file.Filename,
		MimeType:     wantMime,
		Size:         file.Size,
		Path:         dstPath,
		Folder:       folder,
	}
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		media.UploadedBy = &userID
	}

	id, err := s.repo.CreateMedia(ctx, media)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to insert media row")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("media_id", id).Str("filename", filename).Msg("file uploaded")
	dto.SuccessCreatedResponse(ctx, dto.UploadResponse{
		Message:      "File uploaded successfully",
		ID:           id,
		Filename:     filename,
		OriginalName: file.Filename,
		Size:         file.Size,
		URL:          "/uploads/" + filename,
	})
}

// DeleteMedia removes the row first: the database is the source of truth
// and the file unlink stays best-effort.
func (s *service) DeleteMedia(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid media ID")
		return
	}

	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrMediaNotFound) {
			dto.NotFoundError(ctx, "Media not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to get media")
		dto.InternalServerError(ctx)
		return
	}

	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		if errors.Is(err, repo.ErrMediaNotFound) {
			dto.NotFoundError(ctx, "Media not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to delete media row")
		dto.InternalServerError(ctx)
		return
	}

	if err := os.Remove(media.Path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", media.Path).Msg("failed to delete physical file")
	}

	dto.SuccessMessage(ctx, "Media deleted successfully")
}
