package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "msm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}
