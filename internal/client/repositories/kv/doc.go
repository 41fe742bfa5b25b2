// Package kv is the string-keyed durable store backing the registry: one
// SQLite table, opaque byte values, upsert semantics.
package kv
