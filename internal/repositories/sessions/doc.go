// Package sessions is the durable half of the session ledger: work
// sessions and their tags.
//
// The repository issues single statements only. State-machine rules (one
// running session per user, owner checks, finalize atomicity) live in the
// session service, which runs these calls under the store lock and inside
// one transaction where several statements must commit together.
//
// Timestamps are stored as fixed-width RFC3339 UTC text (timex), so ORDER BY
// start_time is chronological.
//
// Single connection note: every query fully drains its rows before the next
// statement is issued, since the store holds exactly one connection.
package sessions
