package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_API_ENDPOINT", "OPENAI_PROMPT_ID", "OPENAI_PROMPT_VERSION",
		"OPENAI_TIMEOUT_SECONDS", "PROMPT_LANGUAGE", "SERVER_PORT", "DEBUG_MODE", "DB_PATH", "STATIC_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	value := Load(filepath.Join(t.TempDir(), "missing.env"))

	if value.OpenAIAPIKey != "" {
		t.Fatalf("api key should be empty: got=%q", value.OpenAIAPIKey)
	}
	if value.OpenAIEndpoint != DefaultOpenAIEndpoint {
		t.Fatalf("unexpected endpoint: got=%q want=%q", value.OpenAIEndpoint, DefaultOpenAIEndpoint)
	}
	if value.PromptID != DefaultPromptID || value.PromptVersion != DefaultPromptVersion {
		t.Fatalf("unexpected prompt: got=%q/%q", value.PromptID, value.PromptVersion)
	}
	if value.ServerPort != DefaultServerPort {
		t.Fatalf("unexpected port: got=%d want=%d", value.ServerPort, DefaultServerPort)
	}
	if value.OpenAITimeout != DefaultOpenAITimeout {
		t.Fatalf("unexpected timeout: got=%v want=%v", value.OpenAITimeout, DefaultOpenAITimeout)
	}
	if value.PromptLanguage != "ko" {
		t.Fatalf("unexpected language: got=%q want=ko", value.PromptLanguage)
	}
	if value.DebugMode {
		t.Fatalf("debug mode should default to false")
	}
}

func TestLoad_DevVarsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	devVars := writeFile(t, dir, ".dev.vars", "# local secrets\nOPENAI_API_KEY=sk-file\nSERVER_PORT=9000\nOPENAI_TIMEOUT_SECONDS=5\nDEBUG_MODE=true\n")

	value := Load(filepath.Join(dir, ".env"), devVars)

	if value.OpenAIAPIKey != "sk-file" {
		t.Fatalf("unexpected api key: got=%q want=%q", value.OpenAIAPIKey, "sk-file")
	}
	if value.ServerPort != 9000 {
		t.Fatalf("unexpected port: got=%d want=9000", value.ServerPort)
	}
	if value.OpenAITimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: got=%v", value.OpenAITimeout)
	}
	if !value.DebugMode {
		t.Fatalf("debug mode should be enabled")
	}
}

func TestLoad_EnvironmentWinsOverFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	first := writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-env-file\nPROMPT_LANGUAGE=EN\n")
	second := writeFile(t, dir, ".dev.vars", "OPENAI_API_KEY=sk-dev-vars\n")

	value := Load(first, second)
	if value.OpenAIAPIKey != "sk-env-file" {
		t.Fatalf("first file should win: got=%q", value.OpenAIAPIKey)
	}
	if value.PromptLanguage != "en" {
		t.Fatalf("language should be lower-cased: got=%q", value.PromptLanguage)
	}

	t.Setenv("OPENAI_API_KEY", "sk-process")
	value = Load(first, second)
	if value.OpenAIAPIKey != "sk-process" {
		t.Fatalf("process env should win: got=%q", value.OpenAIAPIKey)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	value := Load()
	if value.ServerPort != DefaultServerPort {
		t.Fatalf("unexpected port: got=%d want=%d", value.ServerPort, DefaultServerPort)
	}
}
