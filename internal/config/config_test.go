package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

// clearEnv isolates Load from the developer's environment and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"AGENT_CONFIG", "MODEL_PROVIDER", "MODEL", "GOOGLE_API_KEY", "GEMINI_API_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "TAVILY_API_KEY", "MAX_RETRIES", "BASE_BACKOFF",
		"MAX_STEPS", "HTTP_TIMEOUT", "HTTP_PORT", "PARALLEL_TOOLS", "TOOL_CONCURRENCY", "WIKI_LANGUAGE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	testboil.FailTestIfDiff(t, cfg.Provider, ProviderGemini)
	testboil.FailTestIfDiff(t, cfg.Model, "gemini-2.5-flash")
	testboil.FailTestIfDiff(t, cfg.GoogleAPIKey, "g-key")
	testboil.FailTestIfDiff(t, cfg.MaxRetries, 5)
	testboil.FailTestIfDiff(t, cfg.BaseBackoff, 30*time.Second)
	testboil.FailTestIfDiff(t, cfg.MaxSteps, 25)
	testboil.FailTestIfDiff(t, cfg.ParallelTools, false)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_PROVIDER", "openai")
	t.Setenv("MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("MAX_RETRIES", "3")
	t.Setenv("BASE_BACKOFF", "2s")
	t.Setenv("PARALLEL_TOOLS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	testboil.FailTestIfDiff(t, cfg.Provider, ProviderOpenAI)
	testboil.FailTestIfDiff(t, cfg.Model, "gpt-4o-mini")
	testboil.FailTestIfDiff(t, cfg.MaxRetries, 3)
	testboil.FailTestIfDiff(t, cfg.BaseBackoff, 2*time.Second)
	testboil.FailTestIfDiff(t, cfg.ParallelTools, true)
}

func TestLoadDotEnvAndFile(t *testing.T) {
	clearEnv(t)

	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TAVILY_API_KEY=t-key\nGOOGLE_API_KEY=g-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set
	os.Unsetenv("TAVILY_API_KEY")
	os.Unsetenv("GOOGLE_API_KEY")

	path := filepath.Join(dir, "agent.yaml")
	yml := "max_steps: 7\nbase_backoff: 500ms\nwiki_language: de\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AGENT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	testboil.FailTestIfDiff(t, cfg.TavilyAPIKey, "t-key")
	testboil.FailTestIfDiff(t, cfg.GoogleAPIKey, "g-key")
	testboil.FailTestIfDiff(t, cfg.MaxSteps, 7)
	testboil.FailTestIfDiff(t, cfg.BaseBackoff, 500*time.Millisecond)
	testboil.FailTestIfDiff(t, cfg.WikiLanguage, "de")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing gemini key", env: map[string]string{}},
		{name: "missing openai key", env: map[string]string{"MODEL_PROVIDER": "openai"}},
		{name: "unknown provider", env: map[string]string{"MODEL_PROVIDER": "llama", "GOOGLE_API_KEY": "k"}},
		{name: "bad retries", env: map[string]string{"GOOGLE_API_KEY": "k", "MAX_RETRIES": "many"}},
		{name: "zero retries", env: map[string]string{"GOOGLE_API_KEY": "k", "MAX_RETRIES": "0"}},
		{name: "bad duration", env: map[string]string{"GOOGLE_API_KEY": "k", "HTTP_TIMEOUT": "soon"}},
		{name: "missing file", env: map[string]string{"GOOGLE_API_KEY": "k", "AGENT_CONFIG": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
