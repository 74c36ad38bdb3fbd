package tools

import (
	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/application/knowledge"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
)

// NewCatalog arma la tabla completa: cuatro herramientas de inventario y la de conocimiento.
func NewCatalog(log *logger.Logger, inv *inventory.UseCase, kb *knowledge.LookupUseCase, opts ...Option) *Registry {
	v := NewValidator()
	reg := NewRegistry(log, opts...)
	reg.MustRegister(NewInventoryTools(inv).Tools(v)...)
	reg.MustRegister(NewKnowledgeTools(kb).Tools(v)...)
	return reg
}
