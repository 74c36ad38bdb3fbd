package inventory

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// Parámetros de sugerencia. Los prompts del agente dependen de estos valores exactos.
const (
	SuggestionLimit  = 5
	SuggestionCutoff = 0.6
)

// Match candidato con su puntaje de similitud en [0, 1].
type Match struct {
	Name  string
	Score float64
}

// Similarity devuelve el ratio de SequenceMatcher (2*M/T) entre a y b, comparando carácter a carácter.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runeTokens(a), runeTokens(b)).Ratio()
}

// CloseMatches devuelve hasta n candidatos con similitud >= cutoff respecto a word,
// ordenados por puntaje descendente; a igual puntaje gana el nombre mayor.
// Es el mismo criterio que get_close_matches de difflib.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []Match {
	if n <= 0 {
		return nil
	}
	m := difflib.NewMatcher(nil, runeTokens(word))
	var out []Match
	for _, c := range candidates {
		m.SetSeq1(runeTokens(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if score := m.Ratio(); score >= cutoff {
			out = append(out, Match{Name: c, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name > out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func runeTokens(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}
