package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/quizpilot/internal/answer"
	"github.com/abhisek/quizpilot/internal/classify"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "quiz:\n  url: https://quiz.example.com\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Inject.MaxAttempts != 3 {
		t.Errorf("expected default max attempts 3, got %d", cfg.Inject.MaxAttempts)
	}
	if cfg.OCR.Enabled {
		t.Error("ocr should default to disabled")
	}

	policies := cfg.Models.Policies()
	if p := policies.For(classify.TypeProgramming); p.Model != answer.ModelReasoner || !p.Reasoning {
		t.Errorf("programming should default to reasoner: %+v", p)
	}
	if p := policies.For(classify.TypeSingleChoice); p.Model != answer.ModelNormal {
		t.Errorf("single choice should default to normal: %+v", p)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
quiz:
  url: https://quiz.example.com
  username: student
  password: secret
models:
  fill_blank:
    model: reasoner
ocr:
  enabled: true
  endpoint: http://ocr.local:8502/predict/
inject:
  max_attempts: 5
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.Username != "student" {
		t.Errorf("unexpected username: %q", cfg.Quiz.Username)
	}
	if cfg.Models.FillBlank.Model != answer.ModelReasoner {
		t.Errorf("fill_blank override lost: %+v", cfg.Models.FillBlank)
	}
	if cfg.Inject.MaxAttempts != 5 {
		t.Errorf("max_attempts override lost: %d", cfg.Inject.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QUIZPILOT_QUIZ_PASSWORD", "from-env")
	cfg, err := Load(writeConfig(t, "quiz:\n  url: https://quiz.example.com\n  username: u\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.Password != "from-env" {
		t.Errorf("env override lost: %q", cfg.Quiz.Password)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Quiz: QuizConfig{URL: "https://q", Username: "u", Password: "p"},
			Models: ModelsConfig{
				SingleChoice: answer.ModelPolicy{Model: answer.ModelNormal},
				TrueFalse:    answer.ModelPolicy{Model: answer.ModelNormal},
				FillBlank:    answer.ModelPolicy{Model: answer.ModelNormal},
				Programming:  answer.ModelPolicy{Model: answer.ModelReasoner},
			},
			Inject: InjectConfig{MaxAttempts: 3},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c := base()
	c.Quiz.URL = ""
	if err := c.Validate(); err == nil {
		t.Error("missing url accepted")
	}

	c = base()
	c.Models.FillBlank.Model = "turbo"
	if err := c.Validate(); err == nil {
		t.Error("bad model tier accepted")
	}

	c = base()
	c.OCR.Enabled = true
	if err := c.Validate(); err == nil {
		t.Error("ocr without endpoint accepted")
	}

	c = base()
	c.Inject.MaxAttempts = 0
	if err := c.Validate(); err == nil {
		t.Error("zero attempts accepted")
	}
}
