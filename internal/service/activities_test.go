package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/model"
	"conftrack/internal/repo"
)

// mutatorRepo stubs the favorite/registration methods; anything else a
// test reaches panics through the embedded nil interface.
type mutatorRepo struct {
	repo.Repository
	addFavoriteErr    error
	removeFavoriteErr error
	registerErr       error
	unregisterErr     error
}

func (m *mutatorRepo) AddFavorite(ctx context.Context, userID, activityID int64) error {
	return m.addFavoriteErr
}

func (m *mutatorRepo) RemoveFavorite(ctx context.Context, userID, activityID int64) error {
	return m.removeFavoriteErr
}

func (m *mutatorRepo) RegisterTx(ctx context.Context, userID, activityID int64) error {
	return m.registerErr
}

func (m *mutatorRepo) Unregister(ctx context.Context, userID, activityID int64) error {
	return m.unregisterErr
}

// Keeps the post-registration notice path off the message broker: the
// handler logs the load failure and skips publishing.
func (m *mutatorRepo) GetActivityByID(ctx context.Context, id int64, userID *int64) (*model.Activity, error) {
	return nil, errors.New("activity lookup unavailable")
}

func newMutatorService(r repo.Repository) Service {
	log := zerolog.Nop()
	return NewService(r, &log, nil, Config{})
}

func performMutation(handler func(*ginext.Context), path string, authed bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/activities/:id/action", func(c *gin.Context) {
		if authed {
			c.Set(middleware.ContextKeyUserID, int64(7))
		}
		handler(c)
	})

	req := httptest.NewRequest(http.MethodPost, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMutatorErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		repo       *mutatorRepo
		call       func(Service) func(*ginext.Context)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "add favorite succeeds",
			repo:       &mutatorRepo{},
			call:       func(s Service) func(*ginext.Context) { return s.AddFavorite },
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Added to favorites"}`,
		},
		{
			name:       "add favorite twice",
			repo:       &mutatorRepo{addFavoriteErr: repo.ErrAlreadyFavorite},
			call:       func(s Service) func(*ginext.Context) { return s.AddFavorite },
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Already in favorites"}`,
		},
		{
			name:       "add favorite to unknown activity",
			repo:       &mutatorRepo{addFavoriteErr: repo.ErrActivityNotFound},
			call:       func(s Service) func(*ginext.Context) { return s.AddFavorite },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Activity not found"}`,
		},
		{
			name:       "remove favorite succeeds",
			repo:       &mutatorRepo{},
			call:       func(s Service) func(*ginext.Context) { return s.RemoveFavorite },
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Removed from favorites"}`,
		},
		{
			name:       "remove absent favorite",
			repo:       &mutatorRepo{removeFavoriteErr: repo.ErrNotFavorite},
			call:       func(s Service) func(*ginext.Context) { return s.RemoveFavorite },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not in favorites"}`,
		},
		{
			name:       "register succeeds",
			repo:       &mutatorRepo{},
			call:       func(s Service) func(*ginext.Context) { return s.RegisterForActivity },
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Successfully registered"}`,
		},
		{
			name:       "register when full",
			repo:       &mutatorRepo{registerErr: repo.ErrActivityFull},
			call:       func(s Service) func(*ginext.Context) { return s.RegisterForActivity },
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Activity is full"}`,
		},
		{
			name:       "register twice",
			repo:       &mutatorRepo{registerErr: repo.ErrAlreadyRegistered},
			call:       func(s Service) func(*ginext.Context) { return s.RegisterForActivity },
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Already registered"}`,
		},
		{
			name:       "register for unknown activity",
			repo:       &mutatorRepo{registerErr: repo.ErrActivityNotFound},
			call:       func(s Service) func(*ginext.Context) { return s.RegisterForActivity },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Activity not found"}`,
		},
		{
			name:       "cancel registration succeeds",
			repo:       &mutatorRepo{},
			call:       func(s Service) func(*ginext.Context) { return s.CancelRegistration },
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Registration cancelled"}`,
		},
		{
			name:       "cancel absent registration",
			repo:       &mutatorRepo{unregisterErr: repo.ErrNotRegistered},
			call:       func(s Service) func(*ginext.Context) { return s.CancelRegistration },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not registered"}`,
		},
		{
			name:       "storage failure stays generic",
			repo:       &mutatorRepo{addFavoriteErr: errors.New("pq: connection refused")},
			call:       func(s Service) func(*ginext.Context) { return s.AddFavorite },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Service is currently unavailable. Please try again later."}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newMutatorService(tc.repo)
			w := performMutation(tc.call(svc), "/activities/5/action", true)

			require.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestMutatorsRejectAnonymousCaller(t *testing.T) {
	svc := newMutatorService(&mutatorRepo{})
	w := performMutation(svc.AddFavorite, "/activities/5/action", false)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}

func TestMutatorsRejectMalformedActivityID(t *testing.T) {
	svc := newMutatorService(&mutatorRepo{})
	w := performMutation(svc.RegisterForActivity, "/activities/abc/action", true)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid activity ID"}`, w.Body.String())
}
