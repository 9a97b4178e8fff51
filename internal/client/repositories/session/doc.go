// Package session persists the authenticated session on the client.
//
// A session is two entries under fixed keys: "token" holds the opaque bearer
// token and "user" holds the JSON-encoded profile snapshot. Both are written
// together and removed together. A store holding only one of them, or a user
// entry that no longer decodes, reads back as "no session".
//
// Implementations
//
//   - SQLiteRepository: the session table of the local SQLite database.
//   - MemoryRepository: process-local map, used in tests and for
//     sessions that must not outlive the process.
package session
