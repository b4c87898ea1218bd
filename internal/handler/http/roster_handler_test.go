package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
	handler "github.com/daniyarm/rosterhub/internal/handler/http"
	"github.com/daniyarm/rosterhub/internal/handler/http/middleware"
	"github.com/daniyarm/rosterhub/internal/handler/http/mocks"
)

func newRosterRouter(rosterUC *mocks.MockRosterUsecase, presenceUC *mocks.MockPresenceUsecase, identity *entity.Identity) *gin.Engine {
	h := handler.NewRosterHandler(rosterUC, presenceUC)

	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) { middleware.SetIdentity(c, *identity) })
	}
	r.GET("/roster", h.GetRoster)
	r.GET("/roster/stream", h.StreamRoster)
	return r
}

func TestGetRoster(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	r := newRosterRouter(rosterUC, mocks.NewMockPresenceUsecase(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/roster", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var users []entity.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "@alice", users[0].Username)
	assert.Equal(t, int64(30), users[0].Points)
}

func TestGetRoster_ReleasesSubscription(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	r := newRosterRouter(rosterUC, mocks.NewMockPresenceUsecase(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/roster", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 1, rosterUC.AcquireCalls)
	assert.Equal(t, 1, rosterUC.ReleaseCalls)
}

func TestGetRoster_Unavailable(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	rosterUC.ShouldFail = true
	r := newRosterRouter(rosterUC, mocks.NewMockPresenceUsecase(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/roster", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 1, rosterUC.ReleaseCalls)
}

func TestGetRoster_CachedFallbackBeatsError(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	rosterUC.ShouldFail = true
	rosterUC.StaleOnFail = true
	r := newRosterRouter(rosterUC, mocks.NewMockPresenceUsecase(), nil)

	// When the subscription fails with a cached roster on hand, both the
	// fallback and the error reach the handler. The caller must still get
	// the roster, every time.
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/roster", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var users []entity.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 2)
	}
}

func TestStreamRoster_RequiresIdentity(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	r := newRosterRouter(rosterUC, mocks.NewMockPresenceUsecase(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/roster/stream", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, rosterUC.AcquireCalls)
}

// streamRecorder adds the CloseNotify hook c.Stream expects from the
// response writer.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func TestStreamRoster_DeliversSnapshotAndPresence(t *testing.T) {
	rosterUC := mocks.NewMockRosterUsecase()
	presenceUC := mocks.NewMockPresenceUsecase()
	identity := entity.Identity{ID: "42", Username: "alice"}
	r := newRosterRouter(rosterUC, presenceUC, &identity)

	w := newStreamRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, "GET", "/roster/stream", nil)

	// The mock delivers the roster synchronously on acquire, so one frame
	// is already queued when the stream loop starts. With the context
	// cancelled up front the loop drains that frame, then stops.
	cancel()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "event:roster")
	assert.Contains(t, w.Body.String(), "@alice")
	assert.Equal(t, []string{"42"}, presenceUC.AttachedIDs)
	assert.Equal(t, []string{"42"}, presenceUC.DetachedIDs)
	assert.Equal(t, 1, rosterUC.AcquireCalls)
	assert.Equal(t, 1, rosterUC.ReleaseCalls)
}
