package webserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/fortune"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// 利用者に返すメッセージ（上流の生エラーは含めない）
const (
	msgInvalidRequest   = "잘못된 요청입니다."
	msgMissingBirthDate = "생년월일은 필수입니다."
	msgNoAPIKey         = "OPENAI_API_KEY가 설정되지 않았습니다. .env 또는 .dev.vars 파일을 확인하세요."
	msgUpstreamFailed   = "AI 서비스에 문제가 발생했습니다. 잠시 후 다시 시도해주세요."
	msgNoResponseText   = "AI 응답을 받지 못했습니다."
	msgInternalError    = "서버 오류가 발생했습니다."
	msgMethodNotAllowed = "Method not allowed"
)

// FortuneConfig is captured once when the handler is built.
type FortuneConfig struct {
	Upstream       fortune.Config
	PromptLanguage string
}

// fortuneGenerator is the upstream call used by the handler.
type fortuneGenerator interface {
	Generate(ctx context.Context, prompt string) (*fortune.Response, error)
}

// テストで差し替える
var newFortuneGenerator = func(cfg fortune.Config) fortuneGenerator {
	return fortune.NewClient(cfg)
}

type fortuneResponse struct {
	Content string `json:"content"`
}

// NewFortuneHandler serves POST /api/fortune.
func NewFortuneHandler(cfg FortuneConfig) http.HandlerFunc {
	client := newFortuneGenerator(cfg.Upstream)
	apiKeyConfigured := cfg.Upstream.APIKey != ""

	return corsMiddleware("POST, OPTIONS", func(w http.ResponseWriter, r *http.Request) {
		requestID, err := gonanoid.New()
		if err != nil {
			requestID = "unknown"
		}
		log := logger.With(zap.String("request_id", requestID))

		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Fortune handler panicked", zap.Any("panic", rec))
				writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			}
		}()

		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}

		var fields types.BirthFields
		if err := decodeJSONBody(w, r, &fields); err != nil {
			log.Debug("Invalid fortune request body", zap.Error(err))
			writeJSONError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		if !fields.HasDate() {
			writeJSONError(w, http.StatusBadRequest, msgMissingBirthDate)
			return
		}

		if !apiKeyConfigured {
			log.Error("OPENAI_API_KEY is not configured")
			writeJSONError(w, http.StatusInternalServerError, msgNoAPIKey)
			return
		}

		prompt := fortune.ComposePrompt(fields, cfg.PromptLanguage)
		log.Debug("Requesting fortune", zap.String("prompt", prompt))

		started := time.Now()
		resp, err := client.Generate(r.Context(), prompt)
		if err != nil {
			status, message := classifyFortuneError(err)
			var apiErr *fortune.APIError
			if errors.As(err, &apiErr) {
				log.Error("OpenAI API error",
					zap.Int("status", apiErr.StatusCode),
					zap.String("body", apiErr.Body))
			} else {
				log.Error("Fortune request failed", zap.Error(err))
			}
			writeJSONError(w, status, message)
			return
		}

		if !fortune.MatchesLanguage(resp.Text, cfg.PromptLanguage) {
			log.Warn("Fortune narrative language differs from prompt language",
				zap.String("expected", fortune.ResolveLanguage(cfg.PromptLanguage)),
				zap.String("detected", fortune.DetectLanguageCode(resp.Text)))
		}

		log.Info("Fortune generated",
			zap.String("model", resp.Model),
			zap.Int("chars", len([]rune(resp.Text))),
			zap.Duration("elapsed", time.Since(started)))

		writeJSON(w, http.StatusOK, fortuneResponse{Content: resp.Text})
	})
}

func classifyFortuneError(err error) (int, string) {
	switch {
	case fortune.IsUpstreamError(err):
		if errors.Is(err, fortune.ErrNoResponseText) {
			return http.StatusBadGateway, msgNoResponseText
		}
		return http.StatusBadGateway, msgUpstreamFailed
	case errors.Is(err, fortune.ErrNoAPIKey):
		return http.StatusInternalServerError, msgNoAPIKey
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
