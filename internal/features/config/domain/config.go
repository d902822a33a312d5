package domain

import "time"

// AppConfig represents the presentation configuration of the demo.
type AppConfig struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Delays   Delays           `json:"delays"`
	Finetune FinetuneDefaults `json:"finetune"`
}

// Delays holds the simulated latency of each action, in milliseconds.
type Delays struct {
	EnvironmentCheckMS int `json:"environment_check_ms"`
	ModelLoadMS        int `json:"model_load_ms"`
	ClassifyMS         int `json:"classify_ms"`
	TrainingInitMS     int `json:"training_init_ms"`
	TrainingStepMS     int `json:"training_step_ms"`
	OptimizeMS         int `json:"optimize_ms"`
	ReportMS           int `json:"report_ms"`
	APIDemoMS          int `json:"api_demo_ms"`
}

// FinetuneDefaults pre-fills the LoRA panel. Values outside a slider's range
// are pinned to it when the fine-tuning page is built.
type FinetuneDefaults struct {
	R            int     `json:"r"`
	Alpha        int     `json:"alpha"`
	Dropout      float64 `json:"dropout"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`
	WarmupSteps  int     `json:"warmup_steps"`
	MaxSteps     int     `json:"max_steps"`
	SaveSteps    int     `json:"save_steps"`
}

// DefaultAppConfig returns the standard header and pacing of the demo.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Title:    "轮胎制造业技术写作AI大模型Demo",
		Subtitle: "基于ChatGLM3-6B的专业技术文档优化工具",
		Delays: Delays{
			EnvironmentCheckMS: 2000,
			ModelLoadMS:        5000,
			ClassifyMS:         2000,
			TrainingInitMS:     2000,
			TrainingStepMS:     50,
			OptimizeMS:         3000,
			ReportMS:           2000,
			APIDemoMS:          2000,
		},
		Finetune: FinetuneDefaults{
			R:            8,
			Alpha:        16,
			Dropout:      0.1,
			BatchSize:    4,
			LearningRate: 2e-4,
			WarmupSteps:  100,
			MaxSteps:     1000,
			SaveSteps:    500,
		},
	}
}

// Duration converts a millisecond field to a time.Duration.
func Duration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// RuntimeInfo is the read-only view of how the process is configured.
type RuntimeInfo struct {
	Environment  string  `json:"environment"`
	Version      string  `json:"version"`
	PacingFactor float64 `json:"pacing_factor"`
	SessionStore string  `json:"session_store"`
	AppConfig    string  `json:"app_config_path"`
}
