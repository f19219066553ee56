// Package billing handles plan purchases and upgrades through a hosted
// payment provider. The provider owns checkout and payment collection; this
// package creates checkout sessions and turns verified webhooks into plan
// assignments on the user record.
package billing
