// Package users is the identity directory: persistence of user accounts
// keyed by a numeric id and a unique, normalized email.
//
// The SQLite implementation works over dbx.DBTX, so the same repository
// can run against the shared handle or inside a transaction.
//
// Lookup contract:
//
//   - GetByID returns common.ErrNotFound when the row is absent.
//   - FindByEmail returns (nil, nil) when the row is absent; callers decide
//     whether absence is an error.
//
// Inserting or updating to an email that already exists fails with
// common.ErrDuplicateEmail.
package users
