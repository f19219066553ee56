package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator produces photoshoot images from prompts and source images.
// Implementations call an opaque external model; callers must treat results
// as already safety-filtered by the provider.
type Generator interface {
	EnhancePrompt(ctx context.Context, prompt string) (string, error)
	Generate(ctx context.Context, req GenerateRequest) (Image, error)
	Merge(ctx context.Context, req MergeRequest) (Image, error)
}

// GenerateRequest describes a single text-to-image generation.
type GenerateRequest struct {
	Prompt  string
	Shape   string // aspect ratio identifier, e.g. "1:1"
	Quality string // plan quality tier passed through to the model
}

// MergeRequest combines two or more source images under a prompt.
type MergeRequest struct {
	Prompt  string
	Images  [][]byte
	Shape   string
	Quality string
}

// Image is a generated artifact returned by the model.
type Image struct {
	Data        []byte
	ContentType string
}

// Client is an HTTP Generator for the model gateway.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a Client for the configured gateway.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, errors.Join(ErrMisconfigured, errors.New("base URL and API key are required"))
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// EnhancePrompt rewrites a raw user prompt into a detailed photoshoot brief.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	err := c.call(ctx, "/v1/enhance", map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Generate produces one image for the request.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (Image, error) {
	return c.imageCall(ctx, "/v1/generate", map[string]any{
		"model":   c.cfg.Model,
		"prompt":  req.Prompt,
		"shape":   req.Shape,
		"quality": req.Quality,
	})
}

// Merge produces one image combining the request's source images.
func (c *Client) Merge(ctx context.Context, req MergeRequest) (Image, error) {
	images := make([]string, len(req.Images))
	for i, img := range req.Images {
		images[i] = base64.StdEncoding.EncodeToString(img)
	}
	return c.imageCall(ctx, "/v1/merge", map[string]any{
		"model":   c.cfg.Model,
		"prompt":  req.Prompt,
		"images":  images,
		"shape":   req.Shape,
		"quality": req.Quality,
	})
}

func (c *Client) imageCall(ctx context.Context, path string, body map[string]any) (Image, error) {
	var resp struct {
		ImageBase64 string `json:"image_base64"`
		ContentType string `json:"content_type"`
	}
	if err := c.call(ctx, path, body, &resp); err != nil {
		return Image{}, err
	}

	data, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		return Image{}, errors.Join(ErrGenerationFailed, fmt.Errorf("decode image payload: %w", err))
	}
	if resp.ContentType == "" {
		resp.ContentType = "image/png"
	}
	return Image{Data: data, ContentType: resp.ContentType}, nil
}

// call posts the body and decodes the response, retrying transient provider
// failures with a doubling delay. Permanent classifications (credentials,
// safety, provider quota) return immediately; after the attempt budget is
// spent the last error is wrapped with ErrGenerationFailed as the terminal
// result.
func (c *Client) call(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Join(ErrGenerationFailed, err)
	}

	var lastErr error
	delay := c.cfg.RetryBase
	for attempt := 0; attempt < max(1, c.cfg.RetryAttempts); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ErrGenerationFailed, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		var retryable bool
		retryable, lastErr = c.attempt(ctx, path, payload, out)
		if lastErr == nil {
			return nil
		}
		if !retryable {
			return lastErr
		}
	}

	return errors.Join(ErrGenerationFailed, lastErr)
}

func (c *Client) attempt(ctx context.Context, path string, payload []byte, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(c.cfg.BaseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return false, errors.Join(ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failures are worth retrying.
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, errors.Join(ErrGenerationFailed, fmt.Errorf("decode response: %w", err))
	}
	return false, nil
}

// classifyStatus maps gateway failures onto the error taxonomy. The provider
// reports safety rejections as 400s with a marker substring, so the body is
// pattern-matched; everything 5xx is transient.
func classifyStatus(resp *http.Response) (retryable bool, err error) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, errors.Join(ErrMisconfigured, detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, errors.Join(ErrProviderQuota, detail)
	case resp.StatusCode == http.StatusBadRequest && containsSafetyMarker(string(body)):
		return false, errors.Join(ErrContentSafety, detail)
	case resp.StatusCode >= 500:
		return true, detail
	default:
		return false, errors.Join(ErrGenerationFailed, detail)
	}
}

func containsSafetyMarker(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "safety") || strings.Contains(lower, "blocked")
}
