package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DefaultOpenAIEndpoint = "https://api.openai.com/v1"
	DefaultPromptID       = "pmpt_69897a6089148193ba48b5d85cb9badb0ab3da406226d921"
	DefaultPromptVersion  = "1"
	DefaultPromptLanguage = "ko"
	DefaultServerPort     = 8788
	DefaultDBPath         = "lucky.db"
	DefaultStaticDir      = "./dist"
	DefaultOpenAITimeout  = 60 * time.Second
)

// DefaultFiles は読み込み対象の dotenv ファイル（先に見つかった値が優先）
var DefaultFiles = []string{".env", ".dev.vars"}

type EnvValue struct {
	OpenAIAPIKey   string
	OpenAIEndpoint string
	PromptID       string
	PromptVersion  string
	OpenAITimeout  time.Duration
	PromptLanguage string
	ServerPort     int
	DebugMode      bool
	DBPath         string
	StaticDir      string
}

var Value EnvValue

// LoadEnv populates Value from the process environment and DefaultFiles.
func LoadEnv() {
	Value = Load(DefaultFiles...)
}

// Load reads configuration. Real environment variables win over dotenv files.
func Load(files ...string) EnvValue {
	fileVars := map[string]string{}
	for _, file := range files {
		vars, err := godotenv.Read(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Failed to read dotenv file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		logger.Debug("Loaded dotenv file", zap.String("file", file), zap.Int("keys", len(vars)))
		for k, v := range vars {
			if _, exists := fileVars[k]; !exists {
				fileVars[k] = v
			}
		}
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVars[key])
	}

	value := EnvValue{
		OpenAIAPIKey:   get("OPENAI_API_KEY"),
		OpenAIEndpoint: stringOr(get("OPENAI_API_ENDPOINT"), DefaultOpenAIEndpoint),
		PromptID:       stringOr(get("OPENAI_PROMPT_ID"), DefaultPromptID),
		PromptVersion:  stringOr(get("OPENAI_PROMPT_VERSION"), DefaultPromptVersion),
		OpenAITimeout:  DefaultOpenAITimeout,
		PromptLanguage: stringOr(strings.ToLower(get("PROMPT_LANGUAGE")), DefaultPromptLanguage),
		ServerPort:     DefaultServerPort,
		DebugMode:      parseBool(get("DEBUG_MODE")),
		DBPath:         stringOr(get("DB_PATH"), DefaultDBPath),
		StaticDir:      stringOr(get("STATIC_DIR"), DefaultStaticDir),
	}

	if raw := get("SERVER_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			value.ServerPort = port
		} else {
			logger.Warn("Invalid SERVER_PORT, using default", zap.String("value", raw), zap.Int("default", DefaultServerPort))
		}
	}

	if raw := get("OPENAI_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			value.OpenAITimeout = time.Duration(seconds) * time.Second
		} else {
			logger.Warn("Invalid OPENAI_TIMEOUT_SECONDS, using default", zap.String("value", raw))
		}
	}

	return value
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
