package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "GROQ_API_KEY", "GEMINI_API_KEY", "NEWSAPI_KEY",
		"STORAGE_BASE_PATH", "WORKFLOW_TIMEZONE", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestRunCheckPrintsReport(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-secret")
	base := filepath.Join(t.TempDir(), "storage")

	var out bytes.Buffer
	require.NoError(t, run([]string{"--storage-path", base, "--log-level", "error"}, &out))

	report := out.String()
	for _, want := range []string{
		"Newsdesk Configuration",
		"[OK]   Storage Ready: true",
		"[OK]   Llm Configured: true",
		"Preferred LLM: groq",
		"Available Models: groq_gemma, groq_llama3, groq_mixtral",
		"News Sources: 7",
		"Storage Path: " + base,
		"Credentials: GROQ_API_KEY",
	} {
		assert.Contains(t, report, want)
	}
	assert.NotContains(t, report, "gsk-secret")
}

func TestRunEnsureCreatesLayout(t *testing.T) {
	isolateEnv(t)
	base := filepath.Join(t.TempDir(), "storage")

	var out bytes.Buffer
	require.NoError(t, run([]string{"--storage-path", base, "--log-level", "error", "ensure"}, &out))

	assert.Zero(t, out.Len(), "ensure should not print a report")
	for _, dir := range []string{"articles", "reports", "images", "videos", "social_content"} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestRunEnsureFailsUnderFile(t *testing.T) {
	isolateEnv(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := run([]string{"--storage-path", filepath.Join(blocker, "storage"), "--log-level", "error", "ensure"}, &bytes.Buffer{})

	assert.Error(t, err)
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	isolateEnv(t)

	assert.Error(t, run([]string{"--log-level", "loud"}, &bytes.Buffer{}), "invalid log level")
	assert.Error(t, run([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, &bytes.Buffer{}), "missing env file")
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	assert.Error(t, run([]string{"publish"}, &bytes.Buffer{}))
}

func TestCLIOverrides(t *testing.T) {
	c := newCLI()
	command, err := c.app.Parse([]string{"--storage-path", "/srv/news", "serve", "--port", "9090", "--rate-limit-rps", "0"})
	require.NoError(t, err)

	overrides := c.overrides(command)

	require.NotNil(t, overrides.Port)
	assert.Equal(t, "9090", *overrides.Port)
	require.NotNil(t, overrides.RateLimitRPS)
	assert.Zero(t, *overrides.RateLimitRPS)
	assert.Nil(t, overrides.RateLimitBurst)
	require.NotNil(t, overrides.StoragePath)
	assert.Equal(t, "/srv/news", *overrides.StoragePath)
	assert.Nil(t, overrides.LogLevel)
}

func TestCLIOverridesIgnoreServerFlagsOutsideServe(t *testing.T) {
	c := newCLI()
	command, err := c.app.Parse([]string{"check"})
	require.NoError(t, err)

	overrides := c.overrides(command)

	assert.Nil(t, overrides.Port)
	assert.Nil(t, overrides.RateLimitRPS)
	assert.Nil(t, overrides.RateLimitBurst)
}
