// Package spicedocs maintains a locally cached, searchable mirror of the
// NAIF SPICE toolkit HTML documentation and exposes it through a small set
// of query tools. It crawls the documentation tree into an atomically
// published on-disk mirror, indexes it into SQLite with optional FTS5
// ranked search, and serves read-only queries over both.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package spicedocs
