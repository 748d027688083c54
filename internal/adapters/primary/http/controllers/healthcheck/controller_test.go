package healthcheckController

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(checkers map[string]Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(checkers, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoot(t *testing.T) {
	w := get(newRouter(nil), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Natal API up"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := get(newRouter(nil), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	w := get(newRouter(map[string]Checker{"redis": ok}), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	w = get(newRouter(map[string]Checker{"redis": ok, "postgres": down}), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not ready","errors":{"postgres":"unavailable"}}`, w.Body.String())
}
