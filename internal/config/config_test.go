package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsInDevelopment(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, warnings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, devAdminEmail, cfg.Admin.Email)
	assert.Len(t, warnings, 3)
}

func TestLoadReadsNestedKeys(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER__PORT", "9090")
	t.Setenv("PORTFOLIO_SERVER__READ_TIMEOUT", "3s")
	t.Setenv("PORTFOLIO_ADMIN__EMAIL", "me@example.com")
	t.Setenv("PORTFOLIO_ADMIN__PASSWORD", "hunter22")
	t.Setenv("PORTFOLIO_ADMIN__SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORTFOLIO_MEDIA__MAX_UPLOAD_BYTES", "1024")

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "me@example.com", cfg.Admin.Email)
	assert.Equal(t, int64(1024), cfg.Media.MaxUploadBytes)
}

func TestLoadHonoursPlainPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadProductionRequiresAdmin(t *testing.T) {
	t.Setenv("PORTFOLIO_PRIMARY__ENV", "production")
	_, _, err := Load()
	assert.Error(t, err)
}

func TestLoadCloudinaryRequiresCloudName(t *testing.T) {
	t.Setenv("PORTFOLIO_MEDIA__PROVIDER", "cloudinary")
	_, _, err := Load()
	assert.Error(t, err)

	t.Setenv("PORTFOLIO_MEDIA__CLOUD_NAME", "demo")
	_, _, err = Load()
	assert.Error(t, err)

	t.Setenv("PORTFOLIO_MEDIA__API_KEY", "key")
	t.Setenv("PORTFOLIO_MEDIA__API_SECRET", "secret")
	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Media.CloudName)
	assert.Empty(t, cfg.Media.UploadPreset)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("PORTFOLIO_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "primary.env", envKey("PORTFOLIO_PRIMARY__ENV"))
}

func TestEmailMissing(t *testing.T) {
	t.Setenv("PORTFOLIO_EMAIL__PROVIDER", "")
	cfg, err := LoadEmail()
	require.NoError(t, err)
	assert.Contains(t, cfg.Missing(), "PORTFOLIO_EMAIL__PROVIDER")

	t.Setenv("PORTFOLIO_EMAIL__PROVIDER", "resend")
	t.Setenv("PORTFOLIO_EMAIL__FROM", "site@example.com")
	cfg, err = LoadEmail()
	require.NoError(t, err)
	assert.Equal(t, []string{"PORTFOLIO_EMAIL__RESEND_API_KEY"}, cfg.Missing())

	t.Setenv("PORTFOLIO_EMAIL__RESEND_API_KEY", "re_123")
	cfg, err = LoadEmail()
	require.NoError(t, err)
	assert.Empty(t, cfg.Missing())
	assert.Equal(t, "meeting_request", cfg.Template)
}
