package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLive() map[string]bool {
	live := map[string]bool{}
	for _, c := range Columns() {
		live[c] = true
	}
	return live
}

func TestNarrowDropsUnknownKeys(t *testing.T) {
	payload := Payload{
		"nome":             "Ana Silva",
		"queixa_principal": "dor lombar",
		"telefone":         "555-0100",
		"id":               float64(99),
	}

	rec, cols, err := Narrow(payload, allLive())
	require.NoError(t, err)

	assert.Equal(t, []string{ColName, ColChiefComplaint}, cols)
	assert.Equal(t, uint(0), rec.ID)
	require.NotNil(t, rec.Name)
	assert.Equal(t, "Ana Silva", *rec.Name)
	require.NotNil(t, rec.ChiefComplaint)
	assert.Equal(t, "dor lombar", *rec.ChiefComplaint)
	assert.Nil(t, rec.Address)
}

func TestNarrowOnlyUnknownKeys(t *testing.T) {
	rec, cols, err := Narrow(Payload{"foo": "bar"}, allLive())
	require.NoError(t, err)
	assert.Empty(t, cols)
	assert.NotNil(t, rec)
}

func TestNarrowRespectsLiveSchema(t *testing.T) {
	live := allLive()
	delete(live, ColFavorite)

	_, cols, err := Narrow(Payload{"nome": "Ana", "favorito": true}, live)
	require.NoError(t, err)
	assert.Equal(t, []string{ColName}, cols)
}

func TestNarrowConvertsValues(t *testing.T) {
	payload := Payload{
		"intensidade_dor": float64(7),
		"dormencia":       true,
		"observacoes":     nil,
		"tipo_dor":        []interface{}{"pontada", "queimação"},
		"favorito":        true,
	}

	rec, cols, err := Narrow(payload, allLive())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{ColPainIntensity, ColNumbness, ColNotes, ColPainType, ColFavorite}, cols)
	assert.Equal(t, "7", *rec.PainIntensity)
	assert.Equal(t, "true", *rec.Numbness)
	assert.Nil(t, rec.Notes)
	assert.Equal(t, `["pontada","queimação"]`, *rec.PainType)
	assert.Equal(t, 1, rec.Favorite)
}

func TestParseFavorite(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    int
		wantErr bool
	}{
		{true, 1, false},
		{false, 0, false},
		{float64(1), 1, false},
		{float64(0), 0, false},
		{"true", 1, false},
		{"0", 0, false},
		{nil, 0, false},
		{"talvez", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFavorite(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestValue(t *testing.T) {
	name := "Ana"
	rec := &PatientRecord{ID: 3, Name: &name, Favorite: 1}

	v, ok := rec.Value(ColID)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	v, ok = rec.Value(ColName)
	assert.True(t, ok)
	assert.Equal(t, "Ana", v)

	_, ok = rec.Value(ColAddress)
	assert.False(t, ok)

	v, _ = rec.Value(ColFavorite)
	assert.Equal(t, "1", v)
}

func TestColumnsOrder(t *testing.T) {
	cols := Columns()
	assert.Equal(t, ColID, cols[0])
	assert.Equal(t, ColTimestamp, cols[1])
	assert.Equal(t, ColFavorite, cols[len(cols)-1])
	assert.Len(t, cols, 24)
}
