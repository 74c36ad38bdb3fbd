package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-chatbot/internal/domain/inventory"
)

func names(matches []inventory.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Name)
	}
	return out
}

func TestSimilarity_RatioDeSequenceMatcher(t *testing.T) {
	// 8 caracteres coincidentes sobre 8+14: 2*8/22
	assert.InDelta(t, 16.0/22.0, inventory.Similarity("Manzanas", "Manzanas Rojas"), 1e-9)
	assert.InDelta(t, 1.0, inventory.Similarity("Peras", "Peras"), 1e-9)
	assert.InDelta(t, 0.0, inventory.Similarity("abc", "xyz"), 1e-9)
}

func TestSimilarity_CuentaRunasNoBytes(t *testing.T) {
	// "Métrica" y "Metrica" difieren en un solo carácter: 2*6/14
	assert.InDelta(t, 12.0/14.0, inventory.Similarity("Métrica", "Metrica"), 1e-9)
}

func TestCloseMatches_OrdenDescendente(t *testing.T) {
	candidates := []string{"Peras", "Manzanas Verdes", "Manzanas Rojas", "Tornillo M4 x 10mm"}

	got := inventory.CloseMatches("Manzanas", candidates, inventory.SuggestionLimit, inventory.SuggestionCutoff)

	require.Equal(t, []string{"Manzanas Rojas", "Manzanas Verdes"}, names(got))
	assert.Greater(t, got[0].Score, got[1].Score)
	for _, m := range got {
		assert.GreaterOrEqual(t, m.Score, inventory.SuggestionCutoff)
	}
}

func TestCloseMatches_LimiteCincoYDesempate(t *testing.T) {
	candidates := []string{
		"Tornillo M1", "Tornillo M2", "Tornillo M3", "Tornillo M4",
		"Tornillo M5", "Tornillo M6", "Tornillo M7",
	}

	got := inventory.CloseMatches("Tornillo M", candidates, inventory.SuggestionLimit, inventory.SuggestionCutoff)

	// mismo puntaje para todos: a igualdad se ordena por nombre descendente
	assert.Equal(t, []string{"Tornillo M7", "Tornillo M6", "Tornillo M5", "Tornillo M4", "Tornillo M3"}, names(got))
}

func TestCloseMatches_SinCoincidencias(t *testing.T) {
	candidates := []string{"Martillo Bicolor 500g", "Tornillo M4 x 10mm", "Cinta Métrica 5m"}

	assert.Empty(t, inventory.CloseMatches("Zzz", candidates, inventory.SuggestionLimit, inventory.SuggestionCutoff))
	assert.Empty(t, inventory.CloseMatches("Martillo", nil, inventory.SuggestionLimit, inventory.SuggestionCutoff))
	assert.Nil(t, inventory.CloseMatches("Martillo", candidates, 0, inventory.SuggestionCutoff))
}

func TestCloseMatches_CoincidenciaExactaPrimero(t *testing.T) {
	candidates := []string{"Martillo Bicolor", "Martillo Bicolor 500g"}

	got := inventory.CloseMatches("Martillo Bicolor 500g", candidates, inventory.SuggestionLimit, inventory.SuggestionCutoff)

	require.NotEmpty(t, got)
	assert.Equal(t, "Martillo Bicolor 500g", got[0].Name)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
}
