package genai

import "errors"

var (
	// ErrMisconfigured signals a bad API key or model name; retrying cannot help.
	ErrMisconfigured = errors.New("image model gateway rejected credentials or configuration")
	// ErrProviderQuota is the external provider's own rate/quota limit,
	// distinct from Lumishot plan quotas.
	ErrProviderQuota = errors.New("image model provider quota exhausted")
	// ErrContentSafety signals the provider refused the prompt or image.
	ErrContentSafety = errors.New("prompt or image rejected by content safety filters")
	// ErrGenerationFailed is the terminal error after retries are exhausted.
	ErrGenerationFailed = errors.New("image generation failed")
)
