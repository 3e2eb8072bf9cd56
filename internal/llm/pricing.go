package llm

import (
	"sort"
	"strings"
)

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the price of modelID, or nil if it is unknown. Dated
// snapshots match their family ("gpt-4o-mini-2024-07-18" prices as
// "gpt-4o-mini") and a leading "vendor/" is ignored, so OpenRouter IDs price
// like the underlying model.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(modelID)
	candidates := []string{id}
	if _, bare, ok := strings.Cut(id, "/"); ok {
		candidates = append(candidates, bare)
	}

	for _, c := range candidates {
		for _, prefix := range costPrefixes {
			if strings.HasPrefix(c, prefix) {
				cost := modelCosts[prefix]
				return &cost
			}
		}
	}
	return nil
}

// costPrefixes holds the keys of modelCosts, longest first.
var costPrefixes = func() []string {
	keys := make([]string, 0, len(modelCosts))
	for k := range modelCosts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// modelCosts covers the default and friendly-name models of each provider.
var modelCosts = map[string]ModelCost{
	// Groq
	"llama-3.1-8b-instant":    {0.05, 0.08},
	"llama-3.3-70b-versatile": {0.59, 0.79},

	// OpenRouter (after the vendor prefix is dropped)
	"llama-3.1-8b-instruct": {0.02, 0.03},

	// OpenAI
	"gpt-4o-mini": {0.15, 0.6},
	"gpt-4o":      {2.5, 10},
	"gpt-4.1":     {2, 8},

	// Anthropic
	"claude-haiku-4-5": {1, 5},
	"claude-sonnet-4":  {3, 15},

	// Gemini
	"gemini-2.0-flash": {0.1, 0.4},
	"gemini-2.0-pro":   {1.25, 10},
}
