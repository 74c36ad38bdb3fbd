package knowledge

// Document fragmento de conocimiento con sus palabras disparadoras.
// Cada palabra clave es un prefijo que se compara contra las palabras de la pregunta
// normalizada (minúsculas, sin tildes), así "dano" cubre "daño" y "daños".
type Document struct {
	ID       string
	Keywords []string
	Content  string
}

// DefaultCorpus políticas y procedimientos del almacén.
func DefaultCorpus() []Document {
	return []Document{
		{
			ID:       "politica-devoluciones",
			Keywords: []string{"devolu", "devolv", "politica", "reembols", "return", "refund"},
			Content:  "La política de devoluciones establece un plazo de 30 días con el embalaje original.",
		},
		{
			ID:       "procedimiento-danos-envio",
			Keywords: []string{"dano", "danad", "averia", "averiad", "envio", "procedimiento", "damage", "shipment"},
			Content:  "El procedimiento para daños en el envío requiere llenar el Formulario 34B y notificar al proveedor en 48 horas.",
		},
	}
}
