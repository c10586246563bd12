package main

import (
	"bytes"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{appID}, args...))
	return out.String(), err
}

func firstColumn(t *testing.T, output string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2, output)
	return strings.Fields(lines[1])[0]
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POS_STORAGE", "file")
	t.Setenv("POS_FILE_PATH", filepath.Join(dir, "pos.json"))
	t.Setenv("POS_LOG_FILE", filepath.Join(dir, "pos.log"))
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	out, err := run(t, "product", "add", "--name", "Kopi", "--price", "1000", "--stock", "5")
	require.NoError(t, err)
	id := firstColumn(t, out)

	out, err = run(t, "product", "update", "--id", id, "--stock", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Kopi")
	assert.Regexp(t, `\s3\s*$`, out)

	out, err = run(t, "sell", "--item", id+":2")
	require.NoError(t, err)
	assert.Contains(t, out, "Kopi x2")

	out, err = run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Transactions:\t1")
	assert.Contains(t, out, "Items sold:\t2")
	assert.Contains(t, out, "Revenue:\t2000.00")

	out, err = run(t, "product", "list")
	require.NoError(t, err)
	assert.Equal(t, id, firstColumn(t, out))

	_, err = run(t, "product", "delete", "--id", id)
	require.NoError(t, err)
	out, err = run(t, "product", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, id)

	data, err := os.ReadFile(filepath.Join(dir, "pos.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pos_transactions")

	t.Run("Unknown product", func(t *testing.T) {
		_, err := run(t, "product", "delete", "--id", id)
		assert.Error(t, err)
	})

	t.Run("Nothing to update", func(t *testing.T) {
		out, err := run(t, "product", "add", "--name", "Teh", "--price", "500")
		require.NoError(t, err)
		_, err = run(t, "product", "update", "--id", firstColumn(t, out))
		assert.Error(t, err)
	})

	t.Run("Invalid price", func(t *testing.T) {
		_, err := run(t, "product", "add", "--name", "Teh", "--price", "cheap")
		assert.Error(t, err)
	})

	t.Run("Import", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Roti\n    price: 12000\n    stock: 4\n"), 0o644))
		out, err := run(t, "product", "import", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Roti")
	})
}
