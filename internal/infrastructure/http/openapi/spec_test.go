package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	spec, err := GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/v1/members",
		"/v1/tasks",
		"/v1/reports/generate",
		"/v1/reports/submit",
		"/v1/admin/leave",
		"/v1/admin/leave/sync",
		"/v1/admin/summary",
	} {
		assert.NotNil(t, spec.Paths.Find(path), path)
	}
}

func TestGetSwagger_ReturnsIndependentCopies(t *testing.T) {
	a, err := GetSwagger()
	require.NoError(t, err)
	b, err := GetSwagger()
	require.NoError(t, err)

	a.Servers = nil
	assert.NotEmpty(t, b.Servers)
}
