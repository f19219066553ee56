package genai

import "time"

type Config struct {
	BaseURL string        `env:"GENAI_BASE_URL,required"`            // BaseURL of the image model gateway.
	APIKey  string        `env:"GENAI_API_KEY,required"`             // APIKey authenticates against the gateway.
	Model   string        `env:"GENAI_MODEL" envDefault:"photoshoot-v2"` // Model selects the generation model.
	Timeout time.Duration `env:"GENAI_TIMEOUT" envDefault:"45s"`     // Timeout bounds a single model call; generation is slow.

	RetryAttempts int           `env:"GENAI_RETRY_ATTEMPTS" envDefault:"3"` // RetryAttempts for transient provider failures.
	RetryBase     time.Duration `env:"GENAI_RETRY_BASE" envDefault:"2s"`    // RetryBase is doubled per attempt.
}
