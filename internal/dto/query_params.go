package dto

import (
	"net/url"
	"strconv"
)

// Defaults applied when list parameters are absent or unparsable. The
// normalizer never errors: a bad value silently becomes the default.
const (
	DefaultEventID    = 1
	DefaultPage       = 1
	DefaultMediaLimit = 20
	DefaultUserLimit  = 50
)

type ActivityFilter struct {
	EventID int64
	Date    string
	Type    string
	Room    string
}

type MediaFilter struct {
	Folder string
	Search string
}

type UserFilter struct {
	Role   string
	Search string
}

type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ActivityFilterFromQuery(q url.Values) ActivityFilter {
	f := ActivityFilter{
		EventID: DefaultEventID,
		Date:    q.Get("date"),
		Type:    q.Get("type"),
		Room:    q.Get("room"),
	}
	if id, err := strconv.ParseInt(q.Get("event_id"), 10, 64); err == nil && id > 0 {
		f.EventID = id
	}
	return f
}

func MediaFilterFromQuery(q url.Values) MediaFilter {
	f := MediaFilter{
		Folder: q.Get("folder"),
		Search: q.Get("search"),
	}
	// "all" is the picker's wildcard, not a folder name.
	if f.Folder == "all" {
		f.Folder = ""
	}
	return f
}

func UserFilterFromQuery(q url.Values) UserFilter {
	return UserFilter{
		Role:   q.Get("role"),
		Search: q.Get("search"),
	}
}

func PageParamsFromQuery(q url.Values, defaultLimit int) PageParams {
	p := PageParams{Page: DefaultPage, Limit: defaultLimit}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}
