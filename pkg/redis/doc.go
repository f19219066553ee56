// Package redis wraps go-redis connection setup with retries and a
// healthcheck probe. Redis backs the API rate limiter, not entitlement
// state: quota decisions always read the relational store.
package redis
