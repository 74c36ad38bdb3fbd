package tools

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/internal/application/knowledge"
)

// ToolLookupDocuments nombre de la herramienta de conocimiento.
const ToolLookupDocuments = "lookup_documents"

// KnowledgeTools expone la búsqueda de políticas como herramienta.
type KnowledgeTools struct {
	uc *knowledge.LookupUseCase
}

// NewKnowledgeTools construye el adaptador.
func NewKnowledgeTools(uc *knowledge.LookupUseCase) *KnowledgeTools {
	return &KnowledgeTools{uc: uc}
}

// Tools devuelve la herramienta lookup_documents.
func (h *KnowledgeTools) Tools(v *validator.Validate) []Tool {
	return []Tool{{
		Name: ToolLookupDocuments,
		Description: "CONOCIMIENTO. Úsala para preguntas sobre políticas, manuales o procedimientos que NO son datos de stock. " +
			"Devuelve RETRIEVED_CONTEXT con los fragmentos relevantes o KNOWLEDGE_NOT_FOUND.",
		Parameters: objectSchema(map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "Pregunta del usuario en lenguaje natural.",
			},
		}, "question"),
		Handler: Bind(v, h.Lookup),
	}}
}

// Lookup devuelve los fragmentos que coinciden con la pregunta.
func (h *KnowledgeTools) Lookup(_ context.Context, args dto.LookupDocumentsArgs) string {
	docs := h.uc.Retrieve(args.Question)
	if len(docs) == 0 {
		return SentinelKnowledgeNotFound + ": La información requerida no se encontró en la base de conocimientos documentales."
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return SentinelRetrievedContext + ": " + strings.Join(parts, "\n")
}
