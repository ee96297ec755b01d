package webserver

import (
	"net/http"

	"github.com/ichi0g0y/lucky-by-birthday/internal/localdb"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/version"
	"go.uber.org/zap"
)

// handleUsage は上流APIのトークン使用量を返す（DELETEでリセット）
func handleUsage(w http.ResponseWriter, r *http.Request) {
	if localdb.GetDB() == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "usage tracking is disabled")
		return
	}

	switch r.Method {
	case http.MethodGet:
		summary, err := localdb.GetOpenAIUsage()
		if err != nil {
			logger.Error("Failed to get OpenAI usage", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case http.MethodDelete:
		if err := localdb.ResetOpenAIUsage(); err != nil {
			logger.Error("Failed to reset OpenAI usage", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Usage reset",
		})
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, version.Current())
}
