// Package config loads the solver's runtime settings from a YAML file
// with environment-variable overrides. LLM provider credentials live in
// internal/llm's own env config; this file covers the quiz site, the
// per-type model policies, recognition, and injection bounds.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/quizpilot/internal/answer"
	"github.com/abhisek/quizpilot/internal/classify"
)

const envPrefix = "QUIZPILOT"

// Config is the full runtime configuration.
type Config struct {
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Models ModelsConfig `mapstructure:"models"`
	OCR    OCRConfig    `mapstructure:"ocr"`
	Inject InjectConfig `mapstructure:"inject"`
	DBPath string       `mapstructure:"db_path"`
}

// QuizConfig identifies the quiz site and the account to answer as.
// Language constrains programming answers ("python", "sql", ...);
// empty lets the question text decide.
type QuizConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Language string `mapstructure:"language"`
}

// ModelsConfig carries one policy per question type.
type ModelsConfig struct {
	SingleChoice answer.ModelPolicy `mapstructure:"single_choice"`
	TrueFalse    answer.ModelPolicy `mapstructure:"true_false"`
	FillBlank    answer.ModelPolicy `mapstructure:"fill_blank"`
	Programming  answer.ModelPolicy `mapstructure:"programming"`
}

// Policies converts the config block into the requester's policy set.
func (m ModelsConfig) Policies() answer.PolicySet {
	return answer.PolicySet{
		classify.TypeSingleChoice: m.SingleChoice,
		classify.TypeTrueFalse:    m.TrueFalse,
		classify.TypeFillBlank:    m.FillBlank,
		classify.TypeProgramming:  m.Programming,
	}
}

// OCRConfig controls formula image recognition.
type OCRConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	Concurrency int    `mapstructure:"concurrency"`
}

// InjectConfig bounds the write/verify loop.
type InjectConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	BackoffMs   int `mapstructure:"backoff_ms"`
}

// Load reads configuration from path (or the default search locations
// when path is empty) and applies QUIZPILOT_* overrides. A missing
// config file is fine; defaults and environment cover everything but
// the quiz credentials.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/quizpilot")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the fields a live run cannot do without.
func (c *Config) Validate() error {
	if c.Quiz.URL == "" {
		return fmt.Errorf("quiz.url is required (or set %s_QUIZ_URL)", envPrefix)
	}
	if c.Quiz.Username == "" || c.Quiz.Password == "" {
		return fmt.Errorf("quiz.username and quiz.password are required")
	}
	if c.OCR.Enabled && c.OCR.Endpoint == "" {
		return fmt.Errorf("ocr.endpoint is required when ocr.enabled is true")
	}
	for typ, p := range map[string]string{
		"models.single_choice": c.Models.SingleChoice.Model,
		"models.true_false":    c.Models.TrueFalse.Model,
		"models.fill_blank":    c.Models.FillBlank.Model,
		"models.programming":   c.Models.Programming.Model,
	} {
		if p != answer.ModelNormal && p != answer.ModelReasoner {
			return fmt.Errorf("%s.model must be %q or %q", typ, answer.ModelNormal, answer.ModelReasoner)
		}
	}
	if c.Inject.MaxAttempts < 1 {
		return fmt.Errorf("inject.max_attempts must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Empty defaults register the keys so AutomaticEnv can override
	// them even when the config file omits the section.
	v.SetDefault("quiz.url", "")
	v.SetDefault("quiz.username", "")
	v.SetDefault("quiz.password", "")
	v.SetDefault("quiz.language", "")
	v.SetDefault("db_path", "")
	v.SetDefault("models.single_choice.model", answer.ModelNormal)
	v.SetDefault("models.true_false.model", answer.ModelNormal)
	v.SetDefault("models.fill_blank.model", answer.ModelNormal)
	v.SetDefault("models.programming.model", answer.ModelReasoner)
	v.SetDefault("models.programming.reasoning", true)
	v.SetDefault("ocr.enabled", false)
	v.SetDefault("ocr.endpoint", "http://localhost:8502/predict/")
	v.SetDefault("ocr.concurrency", 4)
	v.SetDefault("inject.max_attempts", 3)
	v.SetDefault("inject.backoff_ms", 300)
}
