package imagecdn

import "context"

// Uploader stores a generated image and returns the public URL it is served
// from. The CDN applies on-the-fly transformations via query-string
// directives appended to that URL; see Transform.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
