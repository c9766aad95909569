package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docqa/internal/extract/extracttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	dir  string
	base []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{
		dir: dir,
		base: []string{
			"--database-dsn", filepath.Join(dir, "users.db"),
			"--encryption-key-env", "DOCQA_CLI_TEST_KEY_UNSET",
			"--encryption-key-file", filepath.Join(dir, "encryption_key.key"),
			"--log-level", "error",
		},
	}
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *env) runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "test", Commit: "abc", BuildDate: "today"})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(append([]string{}, args...), e.base...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	t.Cleanup(func() { readPassword = orig })
}

func TestCLI_Session(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "signup", "a@x.com", "--password", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "User a@x.com created successfully!\n", out)

	out, err = e.run(t, "signup", "a@x.com", "--password", "pw2")
	require.NoError(t, err)
	assert.Equal(t, "User already exists!\n", out)

	out, err = e.run(t, "login", "a@x.com", "-p", "nope")
	require.NoError(t, err)
	assert.Equal(t, "Invalid email or password!\n", out)

	stubPassword(t, "pw1", nil)
	out, err = e.run(t, "login", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, a@x.com!\n", out)

	doc := filepath.Join(e.dir, "doc.pdf")
	require.NoError(t, os.WriteFile(doc, extracttest.PDF("Title: Foo"), 0o600))

	out, err = e.run(t, "ask", "a@x.com", "--file", doc, "--question", "What is the title?")
	require.NoError(t, err)
	assert.Equal(t, "Foo\n", out)

	out, err = e.run(t, "ask", "stranger@x.com", "-f", doc, "-q", "What is the title?")
	require.NoError(t, err)
	assert.Equal(t, "You must be logged in to use the chatbot.\n", out)

	out, err = e.run(t, "logout", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "User a@x.com has been logged out.\n", out)

	out, err = e.run(t, "admin", "users")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "a@x.com"))

	out, err = e.run(t, "admin", "documents")
	require.NoError(t, err)
	assert.Contains(t, out, "doc.pdf")
}

func TestCLI_PasswordPromptError(t *testing.T) {
	e := newEnv(t)
	stubPassword(t, "", errors.New("not a terminal"))

	_, err := e.run(t, "signup", "a@x.com")
	require.ErrorContains(t, err, "not a terminal")
}

func TestCLI_AskRequiresFileAndQuestion(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "ask", "a@x.com", "--question", "q")
	require.Error(t, err)

	_, err = e.run(t, "ask", "a@x.com", "--file", filepath.Join(e.dir, "missing.pdf"), "--question", "q")
	require.ErrorContains(t, err, "read document")
}

func TestCLI_Migrate(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "migrations applied\n", out)

	_, err = os.Stat(filepath.Join(e.dir, "users.db"))
	require.NoError(t, err)
}

func TestCLI_InvalidConfig(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "migrate", "--qa-engine", "oracle")
	require.ErrorContains(t, err, "failed to load config")
}

func TestCLI_ConfigFile(t *testing.T) {
	e := newEnv(t)
	path := filepath.Join(e.dir, "docqa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_policy": "plaintext"}`), 0o600))

	_, err := e.run(t, "signup", "a@x.com", "-p", "pw1", "-c", path)
	require.NoError(t, err)

	out, err := e.run(t, "admin", "users")
	require.NoError(t, err)
	// base64("pw1")
	assert.Contains(t, out, "cHcx")
}

func TestCLI_ServeStopsOnCancel(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.runContext(t, ctx, "serve", "--http-addr", "127.0.0.1:0")
	require.NoError(t, err)
}

func TestCLI_Version(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docqa test (commit abc, built today)\n", out)
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret", nil)
	var w bytes.Buffer

	pw, err := passwordFrom("", &w)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Contains(t, w.String(), "Enter password:")

	pw, err = passwordFrom("given", &w)
	require.NoError(t, err)
	assert.Equal(t, "given", pw)
}
