// Package genai is the HTTP client for the external image model gateway:
// prompt enhancement, text-to-image generation and multi-image merging, with
// bounded retries and a provider error taxonomy.
package genai
