package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attendhq/payroll-engine-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
)

// stubPayrollHandler satisfies PayrollHandler for routing tests that never
// reach a handler body.
type stubPayrollHandler struct {
	PayrollHandler
}

func newTestRouter() http.Handler {
	svc := jwt.NewJWTService("test-secret-key-for-jwt")
	return NewRouter(svc, stubPayrollHandler{}, []string{"http://localhost:3000"}, "test")
}

func TestRouterRejectsUnsupportedContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/simulation", strings.NewReader("plain payload"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouterAcceptsJSONContentType(t *testing.T) {
	router := newTestRouter()

	// JSON body passes the content-type gate and fails only on the missing
	// token further down the chain.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/simulation", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterHeartbeat(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
