package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilium/snowball/pkg/api"
	"github.com/nilium/snowball/pkg/catalog/memory"
)

func TestRouterHealthz(t *testing.T) {
	store := memory.New()
	defer store.Close()

	r := api.NewRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/healthz/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRootRedirects(t *testing.T) {
	r := api.NewRouter(memory.New())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}
