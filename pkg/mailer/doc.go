// Package mailer sends transactional email through Postmark, with a
// disk-backed sender for local development. It also renders the quota
// upgrade nudge sent when a user exhausts their monthly allowance.
package mailer
