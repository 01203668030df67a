package llm

// ModelCost is a model's price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the price of modelID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the default and alias models of each provider.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-haiku-4-5":            {1, 5},
	"claude-sonnet-4-5-20250929":  {3, 15},
	"claude-sonnet-4-5":           {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4.1-mini":                {0.4, 1.6},
	"gpt-4.1-nano":                {0.1, 0.4},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-flash-lite":       {0.1, 0.4},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
