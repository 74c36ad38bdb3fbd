package dto

// ToolDefinition descripción de una herramienta para el agente: nombre, cuándo usarla y
// esquema JSON de sus argumentos.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolListResponse tabla de herramientas disponibles.
type ToolListResponse struct {
	Items []ToolDefinition `json:"items"`
}

// ToolResultResponse resultado textual de una invocación.
type ToolResultResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}
