package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-hub/internal/infra/repository"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/testutil"
	"github.com/BruksfildServices01/barber-hub/internal/usecase/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)

	r := gin.New()
	r.GET("/p", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(ContextUserID)})
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/p", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/p", "not-a-jwt").Code)

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")

	tok, err := tokens.Issue(7, time.Now())
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/p", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
}

func TestRequireBarbershopAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.CreateBarbershop(t, db, "alpha")
	admin := testutil.CreateUser(t, db, "admin@example.com", "x")
	barberUser := testutil.CreateUser(t, db, "barber@example.com", "x")
	testutil.GrantRole(t, db, admin.ID, shop.ID, models.RoleAdmin)
	testutil.GrantRole(t, db, barberUser.ID, shop.ID, models.RoleBarber)

	tokens := auth.NewTokens("secret", time.Hour)
	r := gin.New()
	r.GET("/me",
		AuthMiddleware(tokens),
		RequireBarbershopAdmin(repository.NewAccountGormRepository(db)),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"barbershop_id": c.MustGet(ContextBarbershopID)})
		},
	)

	issued := time.Now().Add(-time.Minute)
	adminTok, _ := tokens.Issue(admin.ID, issued)
	barberTok, _ := tokens.Issue(barberUser.ID, issued)
	ghostTok, _ := tokens.Issue(999, issued)

	w := do(r, http.MethodGet, "/me", adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"barbershop_id":%d}`, shop.ID), w.Body.String())

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/me", barberTok).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", ghostTok).Code)

	// password changed after the token was issued
	require.NoError(t, db.Model(admin).Update("password_changed_at", time.Now().Add(-10*time.Second)).Error)
	w = do(r, http.MethodGet, "/me", adminTok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session_revoked")

	fresh, _ := tokens.Issue(admin.ID, time.Now())
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/me", fresh).Code)
}

func TestPasswordChangeRevokesSessionsWithinTheSameSecond(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.CreateBarbershop(t, db, "alpha")
	admin := testutil.CreateUser(t, db, "admin@example.com", "x")
	testutil.GrantRole(t, db, admin.ID, shop.ID, models.RoleAdmin)

	tokens := auth.NewTokens("secret", time.Hour)
	r := gin.New()
	r.GET("/me",
		AuthMiddleware(tokens),
		RequireBarbershopAdmin(repository.NewAccountGormRepository(db)),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	changedAt := time.Now().Truncate(time.Second).Add(-time.Minute).Add(500 * time.Millisecond)
	require.NoError(t, db.Model(admin).Update("password_changed_at", changedAt).Error)

	before, _ := tokens.Issue(admin.ID, changedAt.Add(-200*time.Millisecond))
	same, _ := tokens.Issue(admin.ID, changedAt)
	after, _ := tokens.Issue(admin.ID, changedAt.Add(time.Millisecond))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", before).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", same).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/me", after).Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "requests without Origin pass")

	open := gin.New()
	open.Use(CORSMiddleware(nil))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	open.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

type observed struct {
	method, route string
	status        int
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observed{method, route, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/barbers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, http.MethodGet, "/barbers/12", "")
	do(r, http.MethodGet, "/nowhere", "")

	assert.Equal(t, []observed{
		{"GET", "/barbers/:id", 200},
		{"GET", "unmatched", 404},
	}, obs.seen)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	do(r, http.MethodGet, "/ok", "")
	do(r, http.MethodGet, "/fail", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "route=/ok")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "status=500")
}
