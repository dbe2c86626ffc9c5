package observability

import (
	"strconv"

	"github.com/resonata-labs/resonata-api/internal/llm"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// Mistral pricing per 1K tokens
	mistralMediumInputPrice  = 0.0004
	mistralMediumOutputPrice = 0.002
	mistralLargeInputPrice   = 0.002
	mistralLargeOutputPrice  = 0.006
	mistralSmallInputPrice   = 0.0001
	mistralSmallOutputPrice  = 0.0003

	// Gemini pricing per 1K tokens
	geminiFlashInputPrice  = 0.000075
	geminiFlashOutputPrice = 0.0003
	geminiProInputPrice    = 0.00125
	geminiProOutputPrice   = 0.005
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for all advisory models
var PricingTable = map[string]ModelPricing{
	"mistral-medium-latest": {
		InputPricePer1K:  mistralMediumInputPrice,
		OutputPricePer1K: mistralMediumOutputPrice,
	},
	"mistral-medium": {
		InputPricePer1K:  mistralMediumInputPrice,
		OutputPricePer1K: mistralMediumOutputPrice,
	},
	"mistral-large-latest": {
		InputPricePer1K:  mistralLargeInputPrice,
		OutputPricePer1K: mistralLargeOutputPrice,
	},
	"mistral-small-latest": {
		InputPricePer1K:  mistralSmallInputPrice,
		OutputPricePer1K: mistralSmallOutputPrice,
	},
	"gemini-2.0-flash": {
		InputPricePer1K:  geminiFlashInputPrice,
		OutputPricePer1K: geminiFlashOutputPrice,
	},
	"gemini-1.5-pro": {
		InputPricePer1K:  geminiProInputPrice,
		OutputPricePer1K: geminiProOutputPrice,
	},
}

// CalculateAdvisoryCost calculates the cost in USD for one advisory call
func CalculateAdvisoryCost(model string, usage llm.Usage) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		// Default to mistral-medium pricing if model not found
		pricing = PricingTable["mistral-medium-latest"]
	}

	inputCost := (float64(usage.InputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
