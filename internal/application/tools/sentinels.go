package tools

import (
	"fmt"
	"strings"
)

// Marcadores que el agente externo reconoce como subcadenas. No cambiar su texto.
const (
	SentinelProductNotFound     = "PRODUCT_NOT_FOUND"
	SentinelSuggestionsFound    = "SUGGESTIONS_FOUND"
	SentinelSuggestionsNotFound = "SUGGESTIONS_NOT_FOUND"
	SentinelCreationSuccess     = "CREATION_SUCCESS"
	SentinelDuplicateName       = "DUPLICATE_NAME"
	SentinelRetrievedContext    = "RETRIEVED_CONTEXT"
	SentinelKnowledgeNotFound   = "KNOWLEDGE_NOT_FOUND"
	SentinelInvalidInput        = "INVALID_INPUT"
	SentinelNoOp                = "NO_OP"
	SentinelStorageFailure      = "STORAGE_FAILURE"
	SentinelUnknownTool         = "UNKNOWN_TOOL"
)

// OutcomeOK resultado sin marcador (respuesta informativa normal).
const OutcomeOK = "OK"

var knownSentinels = map[string]struct{}{
	SentinelProductNotFound:     {},
	SentinelSuggestionsFound:    {},
	SentinelSuggestionsNotFound: {},
	SentinelCreationSuccess:     {},
	SentinelDuplicateName:       {},
	SentinelRetrievedContext:    {},
	SentinelKnowledgeNotFound:   {},
	SentinelInvalidInput:        {},
	SentinelNoOp:                {},
	SentinelStorageFailure:      {},
	SentinelUnknownTool:         {},
}

// Outcome devuelve el marcador con el que empieza result, u OutcomeOK si no empieza con ninguno.
func Outcome(result string) string {
	token, _, found := strings.Cut(result, ":")
	if !found {
		return OutcomeOK
	}
	if _, ok := knownSentinels[token]; ok {
		return token
	}
	return OutcomeOK
}

func productNotFound(name string) string {
	return fmt.Sprintf("%s: Producto '%s' no encontrado en el inventario. Usa suggest_similar para buscar nombres parecidos o create_product si es un producto nuevo.",
		SentinelProductNotFound, name)
}

func invalidInput(detail string) string {
	return fmt.Sprintf("%s: Error: %s", SentinelInvalidInput, detail)
}

func storageFailure(action string, err error) string {
	return fmt.Sprintf("%s: Error al %s: %v", SentinelStorageFailure, action, err)
}

func unknownTool(name string) string {
	return fmt.Sprintf("%s: La herramienta '%s' no existe.", SentinelUnknownTool, name)
}
