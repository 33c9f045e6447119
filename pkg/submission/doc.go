// Package submission turns submitted form values into stored receipts.
//
// The Recorder assigns a ULID, hashes password fields with bcrypt and hands
// the result to a Store. MemoryStore backs tests and the terminal wizard; the
// SQLite store in internal/storage/sqlite backs the site server.
package submission
