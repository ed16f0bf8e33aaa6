package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "dolceweb_session", time.Hour, false), mr
}

func TestSessionRoundtrip(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	ctx := context.Background()

	// First request has no cookie: a fresh anonymous session is created.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, sess.User())

	sess.SetUser("7", "admin")
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "dolceweb_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// Second request presents the cookie and resolves the same user.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookie)
	sess2, err := sm.Load(ctx, req2)
	require.NoError(t, err)
	assert.Equal(t, "7", sess2.User())
	assert.Equal(t, "admin", sess2.Role())
}

func TestSessionDestroy(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("3", "vendedor")
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookie := rec.Result().Cookies()[0]
	require.True(t, mr.Exists("dolceweb:session:"+cookie.Value))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sess2, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess2.Destroy()

	rec2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec2, sess2))

	assert.False(t, mr.Exists("dolceweb:session:"+cookie.Value))
	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)
}

func TestSessionExpiredInRedis(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("5", "admin")
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookie := rec.Result().Cookies()[0]

	mr.FastForward(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sess2, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, sess2.User(), "expired sessions resolve as anonymous")
}
