package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "NETSHIELD_CONFIG"
	llmAPIKeyEnv     = "LLM_API_KEY"
	llmModelEnv      = "LLM_MODEL"
	judgeModelEnv    = "JUDGE_MODEL"
	databasePathEnv  = "DATABASE_PATH"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
	inputPathEnv     = "NETSHIELD_INPUT"
	reportPathEnv    = "NETSHIELD_REPORT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	LLM           LLMConfig          `yaml:"llm"`
	News          NewsConfig         `yaml:"news"`
	Batch         BatchConfig        `yaml:"batch"`
	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig defines how to contact the OpenAI-compatible completion API.
// JudgeModel may differ from Model; validation traditionally runs on a
// larger model than extraction and summarization.
type LLMConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	JudgeModel     string `yaml:"judgeModel"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// RequestTimeout resolves the HTTP timeout for completion calls.
func (c LLMConfig) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewsConfig groups settings for contextual news retrieval.
type NewsConfig struct {
	Limit     int              `yaml:"limit"`
	FetchBody bool             `yaml:"fetchBody"`
	Sites     []NewsSiteConfig `yaml:"sites"`
}

// NewsSiteConfig describes a single provider with its scanner strategy.
type NewsSiteConfig struct {
	Name      string `yaml:"name"`
	Scanner   string `yaml:"scanner"`
	SearchURL string `yaml:"searchUrl"`
}

// BatchConfig locates the tabular input and output artifacts.
type BatchConfig struct {
	InputPath  string `yaml:"inputPath"`
	ReportPath string `yaml:"reportPath"`
}

// StorageConfig describes the verdict audit database. An empty path
// disables persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines recurring runs; zero means a single run.
type SchedulerConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

// Interval resolves the configured duration.
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// PipelineConfig bounds the per-call budget of the verification loop.
type PipelineConfig struct {
	CallTimeoutSeconds int `yaml:"callTimeoutSeconds"`
}

// CallTimeout resolves the per-collaborator-call timeout.
func (p PipelineConfig) CallTimeout() time.Duration {
	if p.CallTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(p.CallTimeoutSeconds) * time.Second
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.News.Sites) == 0 {
		cfg.News.Sites = defaultConfig().News.Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(judgeModelEnv); v != "" {
		c.LLM.JudgeModel = v
	}

	if v := os.Getenv(databasePathEnv); v != "" {
		c.Storage.Path = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(inputPathEnv); v != "" {
		c.Batch.InputPath = v
	}

	if v := os.Getenv(reportPathEnv); v != "" {
		c.Batch.ReportPath = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.JudgeModel != "" {
		base.LLM.JudgeModel = override.LLM.JudgeModel
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.TimeoutSeconds > 0 {
		base.LLM.TimeoutSeconds = override.LLM.TimeoutSeconds
	}

	if override.News.Limit > 0 {
		base.News.Limit = override.News.Limit
	}
	if override.News.FetchBody {
		base.News.FetchBody = true
	}
	if len(override.News.Sites) > 0 {
		base.News.Sites = override.News.Sites
	}

	if override.Batch.InputPath != "" {
		base.Batch.InputPath = override.Batch.InputPath
	}
	if override.Batch.ReportPath != "" {
		base.Batch.ReportPath = override.Batch.ReportPath
	}

	if override.Storage.Path != "" {
		base.Storage.Path = override.Storage.Path
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.IntervalMinutes > 0 {
		base.Scheduler = override.Scheduler
	}

	if override.Pipeline.CallTimeoutSeconds > 0 {
		base.Pipeline = override.Pipeline
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			Endpoint:       "https://integrate.api.nvidia.com/v1/chat/completions",
			Model:          "mistralai/mistral-7b-instruct-v0.3",
			JudgeModel:     "meta/llama3-70b-instruct",
			APIKey:         "",
			TimeoutSeconds: 60,
		},
		News: NewsConfig{
			Limit: 5,
			Sites: []NewsSiteConfig{
				{Name: "google-news", Scanner: "google-news"},
			},
		},
		Batch: BatchConfig{
			InputPath:  "video_data.csv",
			ReportPath: "Accountreport.csv",
		},
		Storage:   StorageConfig{Path: ""},
		Scheduler: SchedulerConfig{IntervalMinutes: 0},
		Pipeline:  PipelineConfig{CallTimeoutSeconds: 60},
	}
}
