package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/internal/storage"
	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/genai"
	"github.com/lumishot/lumishot/pkg/imagecdn"
	"github.com/lumishot/lumishot/pkg/slug"
	"github.com/lumishot/lumishot/pkg/usage"
)

// shootWriter is the slice of storage.ShootRepo the service needs.
type shootWriter interface {
	Insert(ctx context.Context, s storage.Shoot) (storage.Shoot, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]storage.Shoot, error)
}

// GenerateRequest is a single photoshoot generation.
type GenerateRequest struct {
	Prompt  string
	Shape   entitlement.Shape
	Quality entitlement.Quality
}

// MergeRequest combines uploaded source images under a prompt.
type MergeRequest struct {
	Prompt  string
	Images  [][]byte
	Shape   entitlement.Shape
	Quality entitlement.Quality
}

var (
	ErrEmptyPrompt    = errors.New("prompt is required")
	ErrNoSourceImages = errors.New("merge requires at least two source images")
)

// Service runs the gated generation pipeline: entitlement check, prompt
// enhancement, model call, CDN upload, persistence, then usage recording.
type Service struct {
	gate      *entitlement.Gate
	generator genai.Generator
	uploader  imagecdn.Uploader
	shoots    shootWriter
	recorder  *usage.Recorder
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the pipeline logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// New creates the studio service.
func New(gate *entitlement.Gate, generator genai.Generator, uploader imagecdn.Uploader, shoots shootWriter, recorder *usage.Recorder, opts ...Option) *Service {
	s := &Service{
		gate:      gate,
		generator: generator,
		uploader:  uploader,
		shoots:    shoots,
		recorder:  recorder,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs one photoshoot generation for the user. The entitlement gate
// decides up front; usage is recorded only after the image exists, so a
// failed generation never consumes quota. A recording failure is logged and
// swallowed so the user still gets the image they paid compute for.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (storage.Shoot, error) {
	if req.Prompt == "" {
		return storage.Shoot{}, ErrEmptyPrompt
	}

	if err := s.gate.Check(ctx, userID, entitlement.ActionGeneration, req.Shape); err != nil {
		return storage.Shoot{}, err
	}

	prompt, err := s.generator.EnhancePrompt(ctx, req.Prompt)
	if err != nil {
		// Enhancement is best effort; the raw prompt still produces a shoot.
		s.log.WarnContext(ctx, "prompt enhancement failed, using raw prompt",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		prompt = req.Prompt
	}

	img, err := s.generator.Generate(ctx, genai.GenerateRequest{
		Prompt:  prompt,
		Shape:   string(req.Shape),
		Quality: string(req.Quality),
	})
	if err != nil {
		return storage.Shoot{}, err
	}

	return s.finish(ctx, userID, entitlement.ActionGeneration, req.Prompt, req.Shape, req.Quality, img)
}

// Merge combines the user's source images into one shot. Same pipeline as
// Generate under the merge action.
func (s *Service) Merge(ctx context.Context, userID uuid.UUID, req MergeRequest) (storage.Shoot, error) {
	if req.Prompt == "" {
		return storage.Shoot{}, ErrEmptyPrompt
	}
	if len(req.Images) < 2 {
		return storage.Shoot{}, ErrNoSourceImages
	}

	if err := s.gate.Check(ctx, userID, entitlement.ActionMerge, req.Shape); err != nil {
		return storage.Shoot{}, err
	}

	img, err := s.generator.Merge(ctx, genai.MergeRequest{
		Prompt:  req.Prompt,
		Images:  req.Images,
		Shape:   string(req.Shape),
		Quality: string(req.Quality),
	})
	if err != nil {
		return storage.Shoot{}, err
	}

	return s.finish(ctx, userID, entitlement.ActionMerge, req.Prompt, req.Shape, req.Quality, img)
}

// Gallery lists the user's shoots newest first.
func (s *Service) Gallery(ctx context.Context, userID uuid.UUID, limit, offset int) ([]storage.Shoot, error) {
	return s.shoots.ListByUser(ctx, userID, limit, offset)
}

// finish uploads the generated image, persists the shoot and records usage.
// The action has already cost external compute, so from here on failures are
// either returned before recording (upload, persist) or logged after it.
func (s *Service) finish(ctx context.Context, userID uuid.UUID, action entitlement.Action, prompt string, shape entitlement.Shape, quality entitlement.Quality, img genai.Image) (storage.Shoot, error) {
	key := fmt.Sprintf("%s/%s%s", userID, slug.MakeUnique(prompt, 48), extensionFor(img.ContentType))

	url, err := s.uploader.Upload(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return storage.Shoot{}, err
	}

	shoot, err := s.shoots.Insert(ctx, storage.Shoot{
		UserID:   userID,
		Kind:     action,
		Prompt:   prompt,
		ImageURL: url,
		Shape:    shape,
		Quality:  quality,
	})
	if err != nil {
		return storage.Shoot{}, err
	}

	// The image exists and is persisted; a failed usage write must not take
	// it away from the user. Recorder logs the undercount warning.
	_ = s.recorder.RecordSuccess(ctx, userID, action)

	return shoot, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
