// Package studio orchestrates the photoshoot pipeline: entitlement gating,
// prompt enhancement, model generation, CDN upload, persistence and usage
// accounting.
package studio
