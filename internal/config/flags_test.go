package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("docqa", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestRegisterFlags_DefaultsMatch(t *testing.T) {
	fs := newFlagSet(t)

	dsn, err := fs.GetString("database-dsn")
	require.NoError(t, err)
	assert.Equal(t, "users.db", dsn)

	max, err := fs.GetInt64("max-upload-bytes")
	require.NoError(t, err)
	assert.Equal(t, int64(20<<20), max)
}

func TestRegisterFlags_Idempotent(t *testing.T) {
	fs := pflag.NewFlagSet("docqa", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NotPanics(t, func() { RegisterFlags(fs) })
}

func TestApplyFlags_OnlyChangedOverride(t *testing.T) {
	fs := newFlagSet(t, "--secret-policy", "plaintext", "--http-addr", "127.0.0.1:9090", "--max-upload-bytes", "10")

	var c Config
	c.LoadDefaults()
	c.DatabaseDSN = "from-json.db"
	require.NoError(t, applyFlags(&c, fs))

	var want Config
	want.LoadDefaults()
	want.DatabaseDSN = "from-json.db"
	want.SecretPolicy = "plaintext"
	want.HTTPAddr = "127.0.0.1:9090"
	want.MaxUploadBytes = 10

	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_Precedence(t *testing.T) {
	stubEnv(t, map[string]string{
		"DOCQA_DATABASE_DSN":  "from-env.db",
		"DOCQA_CACHE_POLICY":  "always",
		"DOCQA_SECRET_POLICY": "hashed",
	}, nil)
	p := writeTempJSON(t, `{"database_dsn": "from-json.db", "log_level": "debug", "cache_policy": "cache"}`)
	fs := newFlagSet(t, "--secret-policy", "plaintext")

	c, err := Load(p, fs)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", c.DatabaseDSN, "env beats json")
	assert.Equal(t, "debug", c.LogLevel, "json beats defaults")
	assert.Equal(t, "always", c.CachePolicy, "env beats json")
	assert.Equal(t, "plaintext", c.SecretPolicy, "flags beat env")
}

func TestLoad_InvalidResultRejected(t *testing.T) {
	noEnv(t)
	fs := newFlagSet(t, "--qa-engine", "bert")

	_, err := Load("", fs)
	require.Error(t, err)
}
