package repo

import (
	"database/sql"
	"strings"

	"conftrack/internal/model"
)

// Presenter rows are aggregated into one string per activity:
// presenters separated by ';', fields inside one presenter by '|'
// ("Ada Lovelace|Prof.|Analytical Society;...").
const (
	presenterRowSep   = ";"
	presenterFieldSep = "|"
)

// parsePresenters turns the aggregate column back into structured records.
// A NULL aggregate (activity without presenters) yields an empty slice,
// never nil, so the JSON field stays a list on every row.
func parsePresenters(aggregated sql.NullString) []model.Presenter {
	presenters := make([]model.Presenter, 0)
	if !aggregated.Valid || aggregated.String == "" {
		return presenters
	}

	for _, row := range strings.Split(aggregated.String, presenterRowSep) {
		if row == "" {
			continue
		}
		fields := strings.SplitN(row, presenterFieldSep, 3)
		p := model.Presenter{Name: fields[0]}
		if len(fields) > 1 {
			p.Title = fields[1]
		}
		if len(fields) > 2 {
			p.Organization = fields[2]
		}
		presenters = append(presenters, p)
	}
	return presenters
}

// scanActivity reads one flat row of the shared activity column set and
// shapes it. The same scan serves the single fetch and every list fetch.
func scanActivity(rows interface{ Scan(...any) error }) (*model.Activity, error) {
	var a model.Activity
	var presenters sql.NullString
	if err := rows.Scan(
		&a.ID, &a.EventID, &a.Title, &a.Subtitle, &a.Description, &a.Introduction,
		&a.Date, &a.StartTime, &a.EndTime, &a.Room, &a.Floor, &a.Type, &a.Category,
		&a.Capacity, &a.CreatedAt, &presenters, &a.IsFavorite, &a.IsRegistered,
	); err != nil {
		return nil, err
	}
	a.Presenters = parsePresenters(presenters)
	return &a, nil
}
