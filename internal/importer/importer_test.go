package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/weddingledger/planner/internal/contributor"
)

var fallback = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1.234,56", want: 123456},
		{in: "1,234.56", want: 123456},
		{in: "150", want: 15000},
		{in: "150,5", want: 15050},
		{in: "€ 75,00", want: 7500},
		{in: "1.000", want: 100000},
		{in: "2.500.000", want: 250000000},
		{in: "100 EUR", want: 10000},
		{in: "", wantErr: true},
		{in: "-10", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_WithHeader(t *testing.T) {
	csv := "Lista de presentes\n\nNome;Valor;Data;Notas\nTia Maria;150,00;12-06-2026;transferência\n;20,00;;\nPrimo Rui;abc;;\n\nAvó Lurdes;1.000,00;;\n"

	rows, skipped, err := Parse(strings.NewReader(csv), fallback)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Tia Maria", rows[0].Name)
	assert.Equal(t, int64(15000), rows[0].Amount)
	assert.Equal(t, time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "transferência", rows[0].Notes)

	assert.Equal(t, "Avó Lurdes", rows[1].Name)
	assert.Equal(t, int64(100000), rows[1].Amount)
	assert.Equal(t, fallback, rows[1].Date)

	require.Len(t, skipped, 2)
	assert.Equal(t, "missing name", skipped[0].Reason)
	assert.Equal(t, errBadAmount.Error(), skipped[1].Reason)
}

func TestParse_PositionalComma(t *testing.T) {
	csv := "Ana,\"1,250.50\",2026-05-02,\nBen,40\n"

	rows, skipped, err := Parse(strings.NewReader(csv), fallback)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(125050), rows[0].Amount)
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "Ben", rows[1].Name)
	assert.Equal(t, int64(4000), rows[1].Amount)
}

func TestParse_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("Nome;Montante\nJoão Gonçalves;50,00\n")
	require.NoError(t, err)

	rows, _, err := Parse(strings.NewReader(raw), fallback)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "João Gonçalves", rows[0].Name)
}

func TestMatcher(t *testing.T) {
	m := newMatcher([]*contributor.Contributor{
		{ID: "c1", Name: "Maria"},
		{ID: "c2", Name: "Tia Maria"},
		{ID: "c3", Name: "José Silva"},
	})

	tests := []struct {
		name string
		want string
	}{
		{name: "tia maria", want: "c2"},
		{name: "Jose  SILVA", want: "c3"},
		{name: "Tia Maria e Tio Rui", want: "c2"},
		{name: "Mariana", want: ""},
		{name: "Rui", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.match(tt.name)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter("a;b;c\n1,2;3"))
	assert.Equal(t, ',', detectDelimiter("a,b,c\n"))
	assert.Equal(t, '\t', detectDelimiter("a\tb\n"))
	assert.Equal(t, ',', detectDelimiter(""))
}
