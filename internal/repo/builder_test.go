package repo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conftrack/internal/dto"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// assertPlaceholdersMatchParams checks that the statement references
// exactly $1..$n for n parameters, in strictly increasing first-use order.
func assertPlaceholdersMatchParams(t *testing.T, query string, params []any) {
	t.Helper()

	matches := placeholderRe.FindAllStringSubmatch(query, -1)
	require.Len(t, matches, len(params), "placeholder count must equal parameter count:\n%s", query)

	next := 1
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		require.Equal(t, next, n, "placeholders must be numbered in text order:\n%s", query)
		next++
	}
}

func buildActivityQuery(userID *int64, filter dto.ActivityFilter) (string, []any) {
	b := activityQuery(userID).Where("a.event_id = ?", filter.EventID)
	if filter.Date != "" {
		b.Where("a.date = ?", filter.Date)
	}
	if filter.Type != "" {
		b.Where("a.type = ?", filter.Type)
	}
	if filter.Room != "" {
		b.Where("a.room = ?", filter.Room)
	}
	return b.OrderBy("a.date, a.start_time").SQL()
}

func TestActivityQueryPlaceholderParamCorrespondence(t *testing.T) {
	userID := int64(42)
	callers := map[string]*int64{"anonymous": nil, "authenticated": &userID}

	for name, caller := range callers {
		for mask := 0; mask < 8; mask++ {
			filter := dto.ActivityFilter{EventID: 1}
			if mask&1 != 0 {
				filter.Date = "2025-10-16"
			}
			if mask&2 != 0 {
				filter.Type = "atelier"
			}
			if mask&4 != 0 {
				filter.Room = "Salle 1"
			}

			t.Run(fmt.Sprintf("%s_mask_%d", name, mask), func(t *testing.T) {
				query, params := buildActivityQuery(caller, filter)
				assertPlaceholdersMatchParams(t, query, params)
			})
		}
	}
}

func TestActivityQueryVariantsShareColumnShape(t *testing.T) {
	userID := int64(7)
	anon, _ := buildActivityQuery(nil, dto.ActivityFilter{EventID: 1})
	auth, _ := buildActivityQuery(&userID, dto.ActivityFilter{EventID: 1})

	for _, column := range []string{"presenters", "is_favorite", "is_registered"} {
		assert.Contains(t, anon, column)
		assert.Contains(t, auth, column)
	}
	assert.NotContains(t, anon, "favorites")
	assert.Contains(t, auth, "LEFT JOIN favorites")
	assert.Contains(t, auth, "LEFT JOIN registrations")
}

func TestActivityQueryAuthenticatedParamsLeadWithCaller(t *testing.T) {
	userID := int64(7)
	_, params := buildActivityQuery(&userID, dto.ActivityFilter{EventID: 3, Date: "2025-10-16"})

	require.Len(t, params, 4)
	assert.Equal(t, userID, params[0])
	assert.Equal(t, userID, params[1])
	assert.Equal(t, int64(3), params[2])
	assert.Equal(t, "2025-10-16", params[3])
}

func TestActivityQueryFilterParamsFollowClauseOrder(t *testing.T) {
	query, params := buildActivityQuery(nil, dto.ActivityFilter{
		EventID: 1, Date: "2025-10-16", Type: "atelier", Room: "Salle 1",
	})

	assertPlaceholdersMatchParams(t, query, params)
	assert.Equal(t, []any{int64(1), "2025-10-16", "atelier", "Salle 1"}, params)

	dateIdx := strings.Index(query, "a.date =")
	typeIdx := strings.Index(query, "a.type =")
	roomIdx := strings.Index(query, "a.room =")
	assert.True(t, dateIdx < typeIdx && typeIdx < roomIdx, "clauses must keep append order")
}

func TestPagedSQLAppendsLimitOffsetLast(t *testing.T) {
	b := newSelect("id", "media m").Where("m.folder = ?", "press")
	query, params := b.PagedSQL(20, 40)

	assertPlaceholdersMatchParams(t, query, params)
	require.Len(t, params, 3)
	assert.Equal(t, "press", params[0])
	assert.Equal(t, 20, params[1])
	assert.Equal(t, 40, params[2])
	assert.True(t, strings.HasSuffix(query, "LIMIT $2 OFFSET $3"))
}

func TestCountSQLReusesWhereParamPrefix(t *testing.T) {
	b := newSelect("m.id, u.first_name", `media m LEFT JOIN users u ON m.uploaded_by = u.id`)
	b.Where("m.folder = ?", "press")
	b.Where("(m.original_name ILIKE ? OR m.filename ILIKE ?)", "%logo%", "%logo%")
	b.OrderBy("m.created_at DESC")

	listQuery, listParams := b.PagedSQL(20, 0)
	countQuery, countParams := b.CountSQL("media m")

	assertPlaceholdersMatchParams(t, listQuery, listParams)
	assertPlaceholdersMatchParams(t, countQuery, countParams)

	// The count statement must carry exactly the WHERE parameters, in the
	// same order, and nothing of the pagination tail.
	require.Len(t, countParams, len(listParams)-2)
	for i, p := range countParams {
		assert.Equal(t, listParams[i], p)
	}
	assert.NotContains(t, countQuery, "LIMIT")
	assert.NotContains(t, countQuery, "ORDER BY")
	assert.NotContains(t, countQuery, "LEFT JOIN")
}

func TestCountSQLSkipsJoinParams(t *testing.T) {
	userID := int64(9)
	b := newSelect("a.id", "activities a LEFT JOIN favorites f ON f.user_id = ?", userID)
	b.Where("a.room = ?", "Salle 2")

	countQuery, countParams := b.CountSQL("activities a")

	assertPlaceholdersMatchParams(t, countQuery, countParams)
	require.Len(t, countParams, 1)
	assert.Equal(t, "Salle 2", countParams[0])
}

func TestNumberPlaceholders(t *testing.T) {
	assert.Equal(t, "SELECT 1", numberPlaceholders("SELECT 1"))
	assert.Equal(t,
		"a = $1 AND b = $2 AND c = $3",
		numberPlaceholders("a = ? AND b = ? AND c = ?"),
	)
}

func TestSelectBuilderNoConditions(t *testing.T) {
	query, params := newSelect("id", "users").OrderBy("created_at DESC").SQL()
	assert.Empty(t, params)
	assert.NotContains(t, query, "WHERE")
	assert.Equal(t, "SELECT id FROM users ORDER BY created_at DESC", query)
}
