package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicterp/erp/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestTenantID(t *testing.T) {
	id := uuid.New()

	attr := logger.TenantID(id)
	assert.Equal(t, "tenant_id", attr.Key)
	assert.Equal(t, id.String(), attr.Value.String())

	assert.True(t, logger.TenantID(nil).Equal(slog.Attr{}))
}

func TestTenantAttrs(t *testing.T) {
	assert.Equal(t, "subdomain", logger.Subdomain("acme").Key)
	assert.Equal(t, "acme", logger.Subdomain("acme").Value.String())
	assert.Equal(t, "tenant_host", logger.Host("custom_domain(shop.example)").Key)
	assert.Equal(t, "request_id", logger.RequestID("abc").Key)
	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))
}
