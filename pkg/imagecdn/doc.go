// Package imagecdn uploads generated images to an S3-compatible bucket
// fronted by a transformation CDN and builds URLs for on-the-fly variants.
package imagecdn
