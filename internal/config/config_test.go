package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *ConfigManager {
	t.Helper()
	m, err := NewConfigManagerAt(filepath.Join(t.TempDir(), "pixdrop", ConfigFileName))
	require.NoError(t, err)
	return m
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := newTestManager(t).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Gallery.PageSize)
	assert.Equal(t, 3600, cfg.Gallery.CacheControlSeconds)
	assert.Equal(t, 2*time.Second, cfg.Gallery.ResetDelay)
	assert.Equal(t, 3*time.Second, cfg.Gallery.ToastDuration)
	assert.Empty(t, cfg.Provider)
	assert.Nil(t, cfg.AWS)
}

func TestSetValue_PersistsAndReloads(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.SetValue("provider", "aws"))
	require.NoError(t, m.SetValue("AWS.Region", "eu-west-1"))
	require.NoError(t, m.SetValue("gallery.reset_delay", "500ms"))

	reloaded, err := NewConfigManagerAt(m.Path())
	require.NoError(t, err)
	cfg, err := reloaded.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "aws", cfg.Provider)
	require.NotNil(t, cfg.AWS)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, 500*time.Millisecond, cfg.Gallery.ResetDelay)

	value, ok := reloaded.GetValue("aws.region")
	assert.True(t, ok)
	assert.Equal(t, "eu-west-1", value)
}

func TestSetValue_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "gcp.zone", "x"},
		{"unsupported provider", "provider", "dropbox"},
		{"page size too small", "gallery.page_size", "0"},
		{"page size not a number", "gallery.page_size", "many"},
		{"bad duration", "gallery.reset_delay", "soon"},
		{"bad url", "public_base_url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			assert.Error(t, m.SetValue(tt.key, tt.value))

			_, ok := m.GetValue(tt.key)
			assert.False(t, ok)
			_, err := os.Stat(m.Path())
			assert.True(t, os.IsNotExist(err), "config file must not be written")
		})
	}
}

func TestDeleteValue(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetValue("bucket", "images"))
	require.NoError(t, m.SetValue("gallery.page_size", "20"))

	deleted, err := m.DeleteValue("gallery.page_size")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.DeleteValue("gallery.page_size")
	require.NoError(t, err)
	assert.False(t, deleted)

	cfg, err := m.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Gallery.PageSize)
	assert.Equal(t, "images", cfg.Bucket)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetValue("bucket", "images"))

	t.Setenv("PIXDROP_BUCKET", "staging-images")
	t.Setenv("PIXDROP_LOCAL_ROOT", "/srv/buckets")

	cfg, err := m.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging-images", cfg.Bucket)
	require.NotNil(t, cfg.Local)
	assert.Equal(t, "/srv/buckets", cfg.Local.Root)

	// Environment overrides are never written back
	value, _ := m.GetValue("bucket")
	assert.Equal(t, "images", value)
}

func TestLoadConfig_DurationFromEnvironment(t *testing.T) {
	m := newTestManager(t)
	t.Setenv("PIXDROP_GALLERY_TOAST_DURATION", "750ms")

	cfg, err := m.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Gallery.ToastDuration)
	assert.Equal(t, 2*time.Second, cfg.Gallery.ResetDelay)
}

func TestNewConfigManagerAt_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewConfigManagerAt(path)
	assert.Error(t, err)
}

func TestKnownKeys_Sorted(t *testing.T) {
	keys := KnownKeys()
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "minio.use_ssl")
}
