package fortune

import (
	"strings"
	"sync"

	"github.com/ichi0g0y/lucky-by-birthday/internal/localdb"
)

type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

var usageMutex sync.Mutex

var modelPricingTable = map[string]modelPricing{
	"gpt-4o-mini":  {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4o":       {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4.1-mini": {InputPerMillion: 0.40, OutputPerMillion: 1.60},
	"gpt-4.1":      {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"gpt-5-mini":   {InputPerMillion: 0.25, OutputPerMillion: 2.00},
	"gpt-5":        {InputPerMillion: 1.25, OutputPerMillion: 10.00},
}

// AddOpenAIUsage records token usage when a database is open.
// Returns the estimated cost and whether the model has a known price.
func AddOpenAIUsage(model string, inputTokens, outputTokens int) (float64, bool, error) {
	if inputTokens <= 0 && outputTokens <= 0 {
		return 0, false, nil
	}

	usageMutex.Lock()
	defer usageMutex.Unlock()

	if localdb.GetDB() == nil {
		return 0, false, nil
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}

	cost, ok := estimateCostUSD(model, inputTokens, outputTokens)
	if err := localdb.AddOpenAIUsage(model, maxInt(inputTokens, 0), maxInt(outputTokens, 0), cost); err != nil {
		return 0, false, err
	}
	return cost, ok, nil
}

func estimateCostUSD(model string, inputTokens, outputTokens int) (float64, bool) {
	if inputTokens <= 0 && outputTokens <= 0 {
		return 0, false
	}
	pricing, ok := modelPricingTable[normalizeModelName(model)]
	if !ok {
		return 0, false
	}
	cost := (float64(inputTokens)/1_000_000.0)*pricing.InputPerMillion +
		(float64(outputTokens)/1_000_000.0)*pricing.OutputPerMillion
	return cost, true
}

// normalizeModelName maps dated snapshots such as gpt-4o-mini-2024-07-18 to their family.
func normalizeModelName(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	best := ""
	for key := range modelPricingTable {
		if model == key {
			return key
		}
		if strings.HasPrefix(model, key+"-") && len(key) > len(best) {
			best = key
		}
	}
	if best != "" {
		return best
	}
	return model
}

func maxInt(value, fallback int) int {
	if value < fallback {
		return fallback
	}
	return value
}
