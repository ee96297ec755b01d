package localdb

import (
	"fmt"
	"time"
)

// ModelUsage はモデル単位の使用量
type ModelUsage struct {
	Model        string    `json:"model"`
	Requests     int       `json:"requests"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CostUSD      float64   `json:"cost_usd"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UsageSummary は全モデル合計
type UsageSummary struct {
	Requests     int          `json:"requests"`
	InputTokens  int          `json:"input_tokens"`
	OutputTokens int          `json:"output_tokens"`
	CostUSD      float64      `json:"cost_usd"`
	Models       []ModelUsage `json:"models"`
}

func AddOpenAIUsage(model string, inputTokens, outputTokens int, costUSD float64) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(`INSERT INTO openai_usage (model, requests, input_tokens, output_tokens, cost_usd, updated_at)
		VALUES (?, 1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(model) DO UPDATE SET
			requests = requests + 1,
			input_tokens = input_tokens + excluded.input_tokens,
			output_tokens = output_tokens + excluded.output_tokens,
			cost_usd = cost_usd + excluded.cost_usd,
			updated_at = CURRENT_TIMESTAMP`,
		model, inputTokens, outputTokens, costUSD)
	if err != nil {
		return fmt.Errorf("failed to add openai usage: %w", err)
	}
	return nil
}

func GetOpenAIUsage() (*UsageSummary, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(`SELECT model, requests, input_tokens, output_tokens, cost_usd, updated_at
		FROM openai_usage ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("failed to query openai usage: %w", err)
	}
	defer rows.Close()

	summary := &UsageSummary{Models: []ModelUsage{}}
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.InputTokens, &u.OutputTokens, &u.CostUSD, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan openai usage: %w", err)
		}
		summary.Requests += u.Requests
		summary.InputTokens += u.InputTokens
		summary.OutputTokens += u.OutputTokens
		summary.CostUSD += u.CostUSD
		summary.Models = append(summary.Models, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}

// ResetOpenAIUsage は使用量を全削除する
func ResetOpenAIUsage() error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, err := db.Exec(`DELETE FROM openai_usage`); err != nil {
		return fmt.Errorf("failed to reset openai usage: %w", err)
	}
	return nil
}
