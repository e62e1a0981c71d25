package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conftrack/internal/dto"
	"conftrack/internal/model"
)

const mediaColumns = `m.id, m.filename, m.original_name, m.mime_type, m.size, m.path,
	m.folder, m.uploaded_by, m.created_at,
	COALESCE(u.first_name || ' ' || u.last_name, '') AS uploader_name`

func (r *repository) GetMedia(ctx context.Context, filter dto.MediaFilter, page dto.PageParams) ([]model.Media, int, error) {
	b := newSelect(mediaColumns, `media m
	LEFT JOIN users u ON m.uploaded_by = u.id`)
	if filter.Folder != "" {
		b.Where("m.folder = ?", filter.Folder)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b.Where("(m.original_name ILIKE ? OR m.filename ILIKE ?)", pattern, pattern)
	}
	b.OrderBy("m.created_at DESC")

	query, params := b.PagedSQL(page.Limit, page.Offset())
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get media: %w", err)
	}
	defer rows.Close()

	media := make([]model.Media, 0)
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(
			&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size, &m.Path,
			&m.Folder, &m.UploadedBy, &m.CreatedAt, &m.UploaderName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countParams := b.CountSQL("media m")
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countParams...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}
	return media, total, nil
}

func (r *repository) GetMediaByID(ctx context.Context, id int64) (*model.Media, error) {
	query := `
		SELECT id, filename, original_name, mime_type, size, path, folder, uploaded_by, created_at
		FROM media WHERE id = $1
	`

	var m model.Media
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size, &m.Path,
		&m.Folder, &m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return &m, nil
}

func (r *repository) CreateMedia(ctx context.Context, m *model.Media) (int64, error) {
	query := `
		INSERT INTO media (filename, original_name, mime_type, size, path, folder, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		m.Filename, m.OriginalName, m.MimeType, m.Size, m.Path, m.Folder, m.UploadedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert media: %w", err)
	}
	return id, nil
}

func (r *repository) DeleteMedia(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
