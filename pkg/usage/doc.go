// Package usage persists and reads per-user action counters over the current
// calendar-month period.
//
// The period window is derived on every read from the configured time zone,
// never stored: counters reset implicitly when a read crosses a month
// boundary. Counts come from an append-only action log, so they never
// decrease. The Recorder is the only writer and is invoked strictly after an
// action's external calls succeeded.
package usage
