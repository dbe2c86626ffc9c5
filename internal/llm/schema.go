package llm

const (
	tempoMin = 40
	tempoMax = 200

	measuresMin = 1
	measuresMax = 32
)

// GetStructuralPlanSchema returns the JSON schema for the advisory output.
// The plan's sections object is ordered; order is preserved by the decoder,
// not the schema, so the schema only constrains section shape.
func GetStructuralPlanSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key": map[string]any{
				"type":        "string",
				"description": "Tonal center, e.g. 'D minor' or 'Eb major'",
			},
			"tempo": map[string]any{
				"type":    "integer",
				"minimum": tempoMin,
				"maximum": tempoMax,
			},
			"sections": map[string]any{
				"type":        "object",
				"description": "Ordered map of section name to section definition",
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"chords": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"measures": map[string]any{
							"type":    "integer",
							"minimum": measuresMin,
							"maximum": measuresMax,
						},
						"melodic_contour": map[string]any{
							"type": "string",
							"enum": []string{"ascending", "descending", "arch"},
						},
					},
					"required": []string{"chords", "measures", "melodic_contour"},
				},
			},
		},
		"required":             []string{"key", "tempo", "sections"},
		"additionalProperties": false,
	}
}
