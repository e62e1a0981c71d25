package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityFilterDefaults(t *testing.T) {
	f := ActivityFilterFromQuery(url.Values{})

	assert.Equal(t, int64(DefaultEventID), f.EventID)
	assert.Empty(t, f.Date)
	assert.Empty(t, f.Type)
	assert.Empty(t, f.Room)
}

func TestActivityFilterFromQuery(t *testing.T) {
	f := ActivityFilterFromQuery(url.Values{
		"event_id": {"3"},
		"date":     {"2025-10-16"},
		"type":     {"atelier"},
		"room":     {"Salle 1"},
	})

	assert.Equal(t, int64(3), f.EventID)
	assert.Equal(t, "2025-10-16", f.Date)
	assert.Equal(t, "atelier", f.Type)
	assert.Equal(t, "Salle 1", f.Room)
}

func TestActivityFilterInvalidEventIDFallsBack(t *testing.T) {
	for _, raw := range []string{"abc", "-2", "0", ""} {
		f := ActivityFilterFromQuery(url.Values{"event_id": {raw}})
		assert.Equal(t, int64(DefaultEventID), f.EventID, "event_id=%q", raw)
	}
}

func TestMediaFilterAllFolderMeansUnset(t *testing.T) {
	f := MediaFilterFromQuery(url.Values{"folder": {"all"}, "search": {"logo"}})

	assert.Empty(t, f.Folder)
	assert.Equal(t, "logo", f.Search)
}

func TestPageParamsDefaults(t *testing.T) {
	p := PageParamsFromQuery(url.Values{}, DefaultMediaLimit)

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultMediaLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestPageParamsInvalidValuesFallBack(t *testing.T) {
	p := PageParamsFromQuery(url.Values{"page": {"zero"}, "limit": {"-5"}}, DefaultUserLimit)

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultUserLimit, p.Limit)
}

func TestPageParamsOffset(t *testing.T) {
	p := PageParamsFromQuery(url.Values{"page": {"3"}, "limit": {"20"}}, DefaultMediaLimit)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset())
}

func TestNewPaginationRoundsPagesUp(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{41, 20, 3},
		{100, 50, 2},
	}

	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.want, p.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, p.Total)
	}
}
