package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"intake-backend/internal/export"
	"intake-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDatabase points the config at a fresh database inside an empty
// working directory.
func useTempDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	t.Setenv("INTAKE_DATABASE_DSN", filepath.Join(dir, "dados_pacientes.db"))
	t.Setenv("INTAKE_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	var names []string
	for _, c := range NewRootCmd().Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "export"}, names)
}

func TestMigrate(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "applied add_favorito\n", out)

	out, err = run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema up to date\n", out)
}

func TestExportEmptyStore(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, "export")
	assert.ErrorIs(t, err, export.ErrEmpty)
}

func TestExportToFile(t *testing.T) {
	dir := useTempDatabase(t)

	e, _, err := setup(context.Background())
	require.NoError(t, err)
	_, err = e.store.Insert(context.Background(), models.Payload{"nome": "Ana", "timestamp": "2024-01-01 09:00:00"})
	require.NoError(t, err)
	e.close()

	outPath := filepath.Join(dir, "out.csv")
	_, err = run(t, "export", "--out", outPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,timestamp,nome,"))
	assert.True(t, strings.HasPrefix(lines[1], "1,2024-01-01 09:00:00,Ana,"))
}
