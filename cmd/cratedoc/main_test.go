package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/cratedoc/cmd/cratedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "cratedoc")
	assert.Contains(t, stdout.String(), "crate")
	assert.Contains(t, stdout.String(), "--registry-url")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

// registryServer serves crates.io responses: known crates get a crate
// object, everything else a 404.
func registryServer(t *testing.T, known map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/v1/crates/")
		body, ok := known[name]
		if !ok {
			http.Error(w, `{"errors":[{"detail":"Not Found"}]}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// offlineArgs points the CLI at a cargo binary that does not exist, so
// every resolution falls through to the registry.
func offlineArgs(t *testing.T, registryURL string, args ...string) (string, []string) {
	t.Helper()

	tempDir := t.TempDir()
	return tempDir, append([]string{
		"--cargo", filepath.Join(t.TempDir(), "no-such-cargo"),
		"--registry-url", registryURL,
		"--temp-dir", tempDir,
	}, args...)
}

func TestMain_Run_FallsBackToRegistry(t *testing.T) {
	t.Parallel()

	server := registryServer(t, map[string]string{
		"serde": `{"crate":{"name":"serde","description":"A generic serialization/deserialization framework","max_version":"1.0.210","downloads":42}}`,
	})
	tempDir, args := offlineArgs(t, server.URL, "serde")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "# serde (version 1.0.210)"))
	assert.Contains(t, stdout.String(), "A generic serialization/deserialization framework")
	assert.Contains(t, stdout.String(), "Failed to generate detailed documentation for this crate.")
	assert.Contains(t, stderr.String(), "cargo not found")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "workspaces must be removed")
}

func TestMain_Run_SkipsToolchainWithoutCargo(t *testing.T) {
	t.Parallel()

	server := registryServer(t, nil)
	_, args := offlineArgs(t, server.URL, "-v", "serde")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "registry lookup")
	assert.NotContains(t, stderr.String(), "create workspace")
	assert.NotContains(t, stderr.String(), "stage=toolchain")
}

func TestMain_Run_FallsBackToTemplate(t *testing.T) {
	t.Parallel()

	name := "this-crate-does-not-exist-xyz123"
	server := registryServer(t, nil)
	_, args := offlineArgs(t, server.URL, name)

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "https://docs.rs/"+name)
	assert.Contains(t, stdout.String(), "https://crates.io/crates/"+name)
}

func TestMain_Run_PrintsInArgumentOrder(t *testing.T) {
	t.Parallel()

	server := registryServer(t, nil)
	_, args := offlineArgs(t, server.URL, "-c", "2", "zeta", "alpha")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	out := stdout.String()
	zeta := strings.Index(out, "# zeta (version latest)")
	alpha := strings.Index(out, "# alpha (version latest)")
	require.NotEqual(t, -1, zeta)
	require.NotEqual(t, -1, alpha)
	assert.Less(t, zeta, alpha)
}

func TestMain_Run_WritesOutputFiles(t *testing.T) {
	t.Parallel()

	server := registryServer(t, nil)
	outDir := filepath.Join(t.TempDir(), "docs")
	_, args := offlineArgs(t, server.URL, "-o", outDir, "anyhow@1.0")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	path := filepath.Join(outDir, "anyhow@1.0.md")
	assert.Equal(t, path+"\n", stdout.String())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "---\n"))
	assert.Contains(t, string(content), "https://docs.rs/anyhow")
	assert.Contains(t, string(content), "# anyhow (version 1.0)")
}
