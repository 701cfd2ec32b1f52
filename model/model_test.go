package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefaultIdentity tests the shipped identity triple
func TestDefaultIdentity(t *testing.T) {
	id := DefaultIdentity()

	assert.Equal(t, "org", id.Qualifier)
	assert.Equal(t, "infohazards", id.Organization)
	assert.Equal(t, "indranet-explorer", id.Application)
	assert.NoError(t, id.Validate())
	assert.Equal(t, "org.infohazards.indranet-explorer", id.String())
}

// TestIdentityProjectPath tests per-platform directory names
func TestIdentityProjectPath(t *testing.T) {
	testCases := []struct {
		name     string
		id       Identity
		goos     string
		expected string
	}{
		{
			name:     "linux default",
			id:       DefaultIdentity(),
			goos:     "linux",
			expected: "indranet-explorer",
		},
		{
			name:     "linux lowercases and drops spaces",
			id:       Identity{Qualifier: "com", Organization: "Foo Corp", Application: " Bar  App "},
			goos:     "linux",
			expected: "barapp",
		},
		{
			name:     "freebsd follows linux",
			id:       DefaultIdentity(),
			goos:     "freebsd",
			expected: "indranet-explorer",
		},
		{
			name:     "darwin bundle id",
			id:       DefaultIdentity(),
			goos:     "darwin",
			expected: "org.infohazards.indranet-explorer",
		},
		{
			name:     "darwin dashes spaces",
			id:       Identity{Qualifier: "com", Organization: "Foo Corp", Application: "Bar App"},
			goos:     "darwin",
			expected: "com.Foo-Corp.Bar-App",
		},
		{
			name:     "darwin skips empty parts",
			id:       Identity{Application: "solo"},
			goos:     "darwin",
			expected: "solo",
		},
		{
			name:     "windows org and app",
			id:       DefaultIdentity(),
			goos:     "windows",
			expected: `infohazards\indranet-explorer`,
		},
		{
			name:     "windows without org",
			id:       Identity{Application: "solo"},
			goos:     "windows",
			expected: "solo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.id.ProjectPath(tc.goos))
		})
	}
}

// TestIdentityValidate tests that an application name is required
func TestIdentityValidate(t *testing.T) {
	assert.Error(t, Identity{Qualifier: "org", Organization: "x"}.Validate())
	assert.Error(t, Identity{Application: "   "}.Validate())
	assert.NoError(t, Identity{Application: "app"}.Validate())
}

// TestConfigDefaults tests default config values
func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.AtomicWrite)
}
