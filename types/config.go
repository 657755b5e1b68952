package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose    bool             `mapstructure:"verbose"`
	Config     string           `mapstructure:"config"`
	Output     OutputConfig     `mapstructure:"output"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"omitempty"`
}

// OutputConfig controls where and how generated collections are written.
type OutputConfig struct {
	// Format selects the serialization of generated collections.
	Format string `mapstructure:"format" validate:"required,oneof=json yaml"`
	// File is the default output path; empty means stdout.
	File string `mapstructure:"file"`
}

// GenerationConfig holds settings for the task generation engine.
type GenerationConfig struct {
	// Provider selects the generator implementation. Empty defaults to the
	// deterministic heuristic engine.
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=heuristic openai"`
	// MaxTasks bounds the number of generated tasks per run.
	MaxTasks int `mapstructure:"maxTasks" validate:"omitempty,min=1,max=200"`
}

// LLMConfig holds configuration for the LLM-backed generator.
type LLMConfig struct {
	ModelName       string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey          string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	Temperature     float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// MaxRetries controls automatic retries on recoverable errors.
	MaxRetries int `mapstructure:"maxRetries" validate:"omitempty,min=0,max=3"`
	// Debug enables request/response logging inside the LLM generator.
	Debug bool `mapstructure:"debug"`
}
