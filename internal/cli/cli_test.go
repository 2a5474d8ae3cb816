package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeLines(t *testing.T, out string) []conversion {
	t.Helper()
	var results []conversion
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var c conversion
		require.NoError(t, json.Unmarshal([]byte(line), &c), "line: %s", line)
		results = append(results, c)
	}
	return results
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode", "2024", "1999", "3999")
	require.NoError(t, err)
	got := decodeLines(t, out)
	require.Len(t, got, 3)
	assert.Equal(t, "MMXXIV", got[0].Roman)
	assert.Equal(t, "MCMXCIX", got[1].Roman)
	assert.Equal(t, "MMMCMXCIX", got[2].Roman)
}

func TestEncodeCommandReportsFailures(t *testing.T) {
	out, err := run(t, "encode", "4000", "2.5", "abc", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 of 4 conversions failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	got := decodeLines(t, strings.Join(lines[:4], "\n"))
	assert.Equal(t, "out_of_range", got[0].Kind)
	assert.Equal(t, "not_an_integer", got[1].Kind)
	assert.Equal(t, "not_an_integer", got[2].Kind)
	assert.Equal(t, "X", got[3].Roman)
	assert.Empty(t, got[3].Error)
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "XXIV", "mcmxcix")
	require.NoError(t, err)
	got := decodeLines(t, out)
	require.Len(t, got, 2)
	assert.Equal(t, 24, got[0].Arabic)
	assert.Equal(t, 1999, got[1].Arabic)

	out, err = run(t, "decode", "IIX")
	require.Error(t, err)
	got = decodeLines(t, strings.Split(out, "\n")[0])
	assert.Equal(t, "invalid_subtraction", got[0].Kind)
}

func TestDecodeCommandPretty(t *testing.T) {
	out, err := run(t, "decode", "--pretty", "--no-color", "XLIX")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"arabic\": 49")
	assert.NotContains(t, out, "\x1b[")
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "romanapi.toml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	_, err = run(t, "config", "init", path)
	require.Error(t, err)

	_, err = run(t, "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = run(t, "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "valid: id=romanapi addr=:3000 tls=false")

	require.NoError(t, os.WriteFile(path, []byte(`addr = "nope"`), 0o644))
	_, err = run(t, "config", "validate", path)
	require.Error(t, err)
}

func TestServeRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romanapi.toml")
	require.NoError(t, os.WriteFile(path, []byte(`shutdown_timeout = "later"`), 0o644))

	_, err := run(t, "--config", path, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown_timeout")
}
