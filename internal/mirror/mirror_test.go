package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"intake-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		payload models.Payload
		want    string
	}{
		{"spaces replaced", models.Payload{"nome": "Ana Maria Silva"}, "Ana_Maria_Silva_20240309140507.json"},
		{"missing name", models.Payload{}, "paciente_20240309140507.json"},
		{"empty name", models.Payload{"nome": ""}, "paciente_20240309140507.json"},
		{"non-string name", models.Payload{"nome": float64(3)}, "paciente_20240309140507.json"},
		{"other characters kept", models.Payload{"nome": "José/Ó"}, "José/Ó_20240309140507.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.payload, fixed))
		})
	}
}

func TestWriteCreatesDirectoryAndKeepsPayload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dados_pacientes")
	w := &Writer{Dir: dir, Now: func() time.Time { return fixed }}

	payload := models.Payload{
		"nome":             "João Silva",
		"queixa_principal": "dor & rigidez",
		"campo_extra":      "mantido",
	}
	path, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "João_Silva_20240309140507.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"campo_extra\": \"mantido\"")
	assert.Contains(t, string(raw), "João Silva")
	assert.Contains(t, string(raw), "dor & rigidez")

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "mantido", got["campo_extra"])
}

func TestWriteSameNameSameSecondOverwrites(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Now: func() time.Time { return fixed }}

	first, err := w.Write(models.Payload{"nome": "Ana", "observacoes": "primeira"})
	require.NoError(t, err)
	second, err := w.Write(models.Payload{"nome": "Ana", "observacoes": "segunda"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(w.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	raw, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "segunda")
}

func TestWriteErrorCarriesStack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "arquivo")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	w := &Writer{Dir: filepath.Join(blocker, "dados_pacientes"), Now: func() time.Time { return fixed }}

	_, err := w.Write(models.Payload{"nome": "Ana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create mirror directory")
	assert.Contains(t, fmt.Sprintf("%+v", err), "mirror.(*Writer).Write")
}
