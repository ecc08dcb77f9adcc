package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkon/bucketgate/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalYAML = `
auth:
  mode: hmac
  hmac:
    secret: test-secret
s3:
  bucket: uploads
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load([]string{writeConfigFile(t, minimalYAML)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.VerifyTimeout)
	assert.False(t, cfg.Server.StrictNames)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "uploads", cfg.S3.Bucket)
	assert.Equal(t, 60, cfg.URLs.UploadTTL)
	assert.Equal(t, 300, cfg.URLs.DownloadTTL)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalYAML+`
server:
  port: 8080
urls:
  upload_ttl: 120
log:
  level: debug
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120, cfg.URLs.UploadTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("BUCKETGATE_SERVER_PORT", "9090")
	t.Setenv("BUCKETGATE_S3_REGION", "eu-central-1")

	cfg, err := config.Load([]string{writeConfigFile(t, minimalYAML)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "eu-central-1", cfg.S3.Region)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("BUCKETGATE_SERVER_PORT", "9090")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--port", "7070"}))

	cfg, err := config.Load([]string{writeConfigFile(t, minimalYAML)}, flags)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_UnsetFlagDoesNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 1234, "")

	cfg, err := config.Load([]string{writeConfigFile(t, minimalYAML)}, flags)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestLoad_MissingBucketFails(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  mode: hmac
  hmac:
    secret: test-secret
`)

	_, err := config.Load([]string{path}, nil)
	assert.Error(t, err)
}

func TestLoad_BadAuthModeFails(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  mode: firebase
s3:
  bucket: uploads
`)

	_, err := config.Load([]string{path}, nil)
	assert.Error(t, err)
}

func TestLoad_HMACModeRequiresSecret(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  mode: hmac
s3:
  bucket: uploads
`)

	_, err := config.Load([]string{path}, nil)
	assert.Error(t, err)
}

func TestLoad_OIDCModeRequiresIssuerOrJWKS(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  mode: oidc
s3:
  bucket: uploads
`)

	_, err := config.Load([]string{path}, nil)
	assert.Error(t, err)
}

func TestLoad_OIDCSettings(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  mode: oidc
  oidc:
    issuer: https://securetoken.google.com/my-project
    audience: my-project
s3:
  bucket: uploads
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://securetoken.google.com/my-project", cfg.Auth.OIDC.Issuer)
	assert.Equal(t, "my-project", cfg.Auth.OIDC.Audience)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &config.Config{}
	ctx := config.WithContext(context.Background(), cfg)

	got, err := config.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	_, err = config.FromContext(context.Background())
	assert.Error(t, err)
}
