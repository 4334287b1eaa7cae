package config

import (
	"cmp"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort              = "8000"
	DefaultMaterialsDir      = "materials"
	DefaultStaticDir         = "frontend"
	DefaultDistractorWorkers = 1
	DefaultLogLevel          = "info"
)

// Config holds runtime configuration sourced from environment variables.
type Config struct {
	Addr              string
	MaterialsDir      string
	StaticDir         string
	DistractorWorkers int
	// ResultCacheTTL is how long a finished upload result is reused for an
	// identical file. Zero only coalesces uploads that are in flight.
	ResultCacheTTL time.Duration
	LogLevel       string
	LLM            LLM
}

// LLM selects the completion provider. An empty APIKey means no provider.
type LLM struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// providerKeys lists the API key variable per provider, in auto-detection order.
var providerKeys = []struct {
	provider, key, model string
}{
	{"openai", "OPENAI_API_KEY", "OPENAI_MODEL"},
	{"groq", "GROQ_API_KEY", "GROQ_MODEL"},
	{"grok", "GROK_API_KEY", "GROK_MODEL"},
	{"gemini", "GEMINI_API_KEY", "GEMINI_MODEL"},
	{"moonshot", "MOONSHOT_API_KEY", "MOONSHOT_MODEL"},
	{"kimi", "KIMI_API_KEY", "KIMI_MODEL"},
}

// Load reads Config from environment variables, falling back to defaults for
// missing or invalid values.
func Load() *Config {
	cfg := &Config{
		Addr:              ":" + cmp.Or(os.Getenv("PORT"), DefaultPort),
		MaterialsDir:      cmp.Or(os.Getenv("MATERIALS_DIR"), DefaultMaterialsDir),
		StaticDir:         cmp.Or(os.Getenv("STATIC_DIR"), DefaultStaticDir),
		DistractorWorkers: DefaultDistractorWorkers,
		LogLevel:          cmp.Or(os.Getenv("LOG_LEVEL"), DefaultLogLevel),
		LLM:               loadLLM(),
	}
	if v := os.Getenv("DISTRACTOR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DistractorWorkers = n
		}
	}
	if v := os.Getenv("RESULT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.ResultCacheTTL = d
		}
	}
	return cfg
}

func loadLLM() LLM {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	llm := LLM{BaseURL: os.Getenv("OPENAI_BASE_URL")}
	for _, p := range providerKeys {
		if provider != "" && provider != p.provider {
			continue
		}
		key := os.Getenv(p.key)
		if key == "" && provider == "" {
			continue
		}
		llm.Provider = p.provider
		llm.APIKey = key
		llm.Model = cmp.Or(os.Getenv("LLM_MODEL"), os.Getenv(p.model))
		break
	}
	return llm
}
