package knowledge

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LookupUseCase responde preguntas libres contra un corpus fijo por coincidencia de palabras clave.
// Es determinista: la misma pregunta devuelve siempre los mismos documentos, en el orden del corpus.
type LookupUseCase struct {
	docs []Document
}

// NewLookupUseCase construye el caso de uso; las palabras clave se normalizan una sola vez.
func NewLookupUseCase(docs []Document) *LookupUseCase {
	normalized := make([]Document, 0, len(docs))
	for _, d := range docs {
		kws := make([]string, 0, len(d.Keywords))
		for _, k := range d.Keywords {
			if k = Normalize(k); k != "" {
				kws = append(kws, k)
			}
		}
		normalized = append(normalized, Document{ID: d.ID, Keywords: kws, Content: d.Content})
	}
	return &LookupUseCase{docs: normalized}
}

// Retrieve devuelve los documentos con alguna palabra clave que sea prefijo de una palabra
// de la pregunta. "averia" cubre "averiado" pero no "averiguar".
func (uc *LookupUseCase) Retrieve(question string) []Document {
	words := Words(question)
	if len(words) == 0 {
		return nil
	}
	var out []Document
	for _, d := range uc.docs {
		if matchesAny(words, d.Keywords) {
			out = append(out, d)
		}
	}
	return out
}

func matchesAny(words, keywords []string) bool {
	for _, k := range keywords {
		for _, w := range words {
			if strings.HasPrefix(w, k) {
				return true
			}
		}
	}
	return false
}

// Words normaliza s y lo parte en palabras (letras y dígitos); la puntuación separa.
func Words(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Normalize pasa a minúsculas y elimina diacríticos ("Daños" -> "danos").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
