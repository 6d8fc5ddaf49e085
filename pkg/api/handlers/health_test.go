package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilium/snowball/pkg/api/handlers"
	"github.com/nilium/snowball/pkg/catalog/memory"
)

func TestLivenessAlwaysHealthy(t *testing.T) {
	h := handlers.NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Liveness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessUnhealthyWithNilStore(t *testing.T) {
	h := handlers.NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz/ready", nil)
	rec := httptest.NewRecorder()
	h.Readiness(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessHealthyWithStore(t *testing.T) {
	store := memory.New()
	defer store.Close()

	h := handlers.NewHealthHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/healthz/ready", nil).WithContext(context.Background())
	rec := httptest.NewRecorder()
	h.Readiness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
