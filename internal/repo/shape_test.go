package repo

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conftrack/internal/model"
)

func aggregate(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestParsePresentersMultiple(t *testing.T) {
	got := parsePresenters(aggregate(
		"Marie Curie|Prof.|Sorbonne;Louis Pasteur|Dr.|Institut Pasteur",
	))

	require.Len(t, got, 2)
	assert.Equal(t, model.Presenter{Name: "Marie Curie", Title: "Prof.", Organization: "Sorbonne"}, got[0])
	assert.Equal(t, model.Presenter{Name: "Louis Pasteur", Title: "Dr.", Organization: "Institut Pasteur"}, got[1])
}

func TestParsePresentersSingle(t *testing.T) {
	got := parsePresenters(aggregate("Ada Lovelace|Ing.|Analytical Society"))

	require.Len(t, got, 1)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
}

func TestParsePresentersNullAggregateYieldsEmptyList(t *testing.T) {
	got := parsePresenters(sql.NullString{})

	require.NotNil(t, got, "no presenters must shape into an empty list, never nil")
	assert.Empty(t, got)
}

func TestParsePresentersEmptyStringYieldsEmptyList(t *testing.T) {
	got := parsePresenters(aggregate(""))

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParsePresentersMissingFields(t *testing.T) {
	got := parsePresenters(aggregate("Grace Hopper"))

	require.Len(t, got, 1)
	assert.Equal(t, "Grace Hopper", got[0].Name)
	assert.Empty(t, got[0].Title)
	assert.Empty(t, got[0].Organization)
}

func TestParsePresentersKeepsPipeInOrganization(t *testing.T) {
	// SplitN caps at three fields, so a stray separator stays in the last one.
	got := parsePresenters(aggregate("Jean Valjean|M.|Acme|R&D"))

	require.Len(t, got, 1)
	assert.Equal(t, "Acme|R&D", got[0].Organization)
}

func TestParsePresentersSkipsEmptyRows(t *testing.T) {
	got := parsePresenters(aggregate("Marie Curie|Prof.|Sorbonne;"))

	require.Len(t, got, 1)
}
