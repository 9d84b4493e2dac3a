package tests

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, ".cadastro", "config.json"), p)
}

func TestLoad_FileNotExists_ReturnsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "no-such-file.json")

	s, err := config.Load(p)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, config.DefaultServerURL, s.ServerURL)
	require.Equal(t, config.Duration(config.DefaultTimeout), s.Timeout)
	require.False(t, s.TLSVerify)
}

func TestDefaultServerURL_IsPlainHTTP(t *testing.T) {
	u, err := url.Parse(config.DefaultServerURL)
	require.NoError(t, err)
	require.Equal(t, "http", u.Scheme)
	require.Equal(t, "8080", u.Port())
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "config.json") // вложенная директория

	want := &config.Settings{
		ServerURL: "http://localhost:9090",
		Timeout:   config.Duration(3 * time.Second),
		TLSVerify: true,
	}
	require.NoError(t, config.Save(p, want))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"timeout": "3s"`)
	require.Contains(t, string(raw), `"tls_verify": true`)

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// права проверяем только не на windows
	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Zero(t, st.Mode().Perm()&0o077, "expected no group/other permissions")
	}
}

func TestLoad_PartialFile_FillsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server_url":"http://example"}`), 0o600))

	s, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, "http://example", s.ServerURL)
	require.Equal(t, config.Duration(config.DefaultTimeout), s.Timeout)
}

func TestLoad_BadJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte("{bad-json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestLoad_BadTimeout_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"timeout":"soon"}`), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}
