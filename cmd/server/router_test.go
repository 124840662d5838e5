package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicterp/erp/pkg/httpserver"
	"github.com/slicterp/erp/pkg/requestid"
	"github.com/slicterp/erp/pkg/tenant"
	"github.com/slicterp/erp/pkg/tenant/memstore"
)

func newTestRouter(t *testing.T, store tenant.Store, checks map[string]httpserver.Check) http.Handler {
	t.Helper()

	resolver := tenant.NewResolver(tenant.NewDirectory(store), tenant.NewParser())
	return Router(RouterOptions{
		Resolver:         resolver,
		Readiness:        checks,
		ReadinessTimeout: time.Second,
	})
}

func get(h http.Handler, host, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Tenant(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	acme := &tenant.Tenant{
		Subdomain: "acme",
		Domain:    "acme-corp.com",
		Name:      "Acme",
		Status:    tenant.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store := memstore.New(acme)
	h := newTestRouter(t, store, nil)

	t.Run("production subdomain", func(t *testing.T) {
		t.Parallel()

		rec := get(h, "acme.slicterp.com", "/api/tenant")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))

		var got tenant.Tenant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "acme", got.Subdomain)
		assert.Equal(t, tenant.StatusActive, got.Status)
	})

	t.Run("custom domain", func(t *testing.T) {
		t.Parallel()

		rec := get(h, "acme-corp.com", "/api/tenant")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"subdomain":"acme"`)
	})

	t.Run("unknown subdomain", func(t *testing.T) {
		t.Parallel()

		rec := get(h, "ghost.slicterp.com", "/api/tenant")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("reserved host has no tenant", func(t *testing.T) {
		t.Parallel()

		rec := get(h, "www.slicterp.com", "/api/tenant")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_DefaultTenant(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	h := newTestRouter(t, store, nil)

	var ids []string
	for range 3 {
		rec := get(h, "localhost:3000", "/api/tenant")
		require.Equal(t, http.StatusOK, rec.Code)

		var got tenant.Tenant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "demo", got.Subdomain)
		assert.Equal(t, tenant.StatusTrial, got.Status)
		ids = append(ids, got.ID.String())
	}
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])
	assert.Equal(t, 1, store.Len())
}

func TestRouter_HostInfo(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, memstore.New(), nil)

	tests := []struct {
		host string
		want hostResponse
	}{
		{"acme.slicterp.com", hostResponse{Kind: "production_subdomain", Name: "acme", Subdomain: "acme"}},
		{"acme.localhost:3000", hostResponse{Kind: "localhost_subdomain", Name: "acme", Subdomain: "acme"}},
		{"acme-corp.com", hostResponse{Kind: "custom_domain", Name: "acme-corp.com", Domain: "acme-corp.com"}},
		{"admin.slicterp.com", hostResponse{Kind: "reserved", Name: "admin"}},
		{"localhost:3000", hostResponse{Kind: "localhost_root"}},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/host", nil)
			req.Host = tt.host
			req.Header.Set(tenant.HeaderSubdomain, "spoofed")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var got hostResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	failing := map[string]httpserver.Check{
		"postgres": func(context.Context) error { return errors.New("connection refused") },
	}
	h := newTestRouter(t, memstore.New(), failing)

	rec := get(h, "ghost.slicterp.com", "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "ghost.slicterp.com", "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
