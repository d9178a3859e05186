package gemini

import "google.golang.org/genai"

// auditSchemaFields lists the nine mandatory audit fields, in response order.
var auditSchemaFields = []string{
	"headline", "quality", "emotion", "trending", "viralPotential",
	"overall", "suggestions", "pros", "sensitiveWords",
}

// auditResponseSchema builds the genai response schema constraining the
// audit call's JSON output: six integer scores and three string lists, all
// required.
func auditResponseSchema() *genai.Schema {
	score := func() *genai.Schema {
		return &genai.Schema{Type: genai.TypeInteger}
	}
	stringList := func() *genai.Schema {
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"headline":       score(),
			"quality":        score(),
			"emotion":        score(),
			"trending":       score(),
			"viralPotential": score(),
			"overall":        score(),
			"suggestions":    stringList(),
			"pros":           stringList(),
			"sensitiveWords": stringList(),
		},
		Required: auditSchemaFields,
	}
}
