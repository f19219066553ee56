// Package httpapi exposes the product over HTTP: the gated generation
// endpoints, entitlement status, the public plan catalog, the gallery and
// the billing upgrade flow.
package httpapi
