// Package sqlrep holds the untyped, mutable query representation: one
// clause tree per statement, covering the select list, filters, joins,
// grouping, having, ordering, pagination, and the insert/update/delete
// payloads.
//
// The representation is dialect-agnostic. Column and table identifiers
// are plain strings, values travel as any and are bound as driver
// parameters at compile time, never interpolated. Rendering to SQL text
// is the concern of package dialect.
//
// Mutation methods return the receiver so clauses chain in any order.
// Each clause is independent state; the only rewriting pair is
// pagination, where limit/offset are last-write-wins quantities shared
// by every pagination shape.
//
// A Query is not safe for concurrent mutation. Build one per goroutine.
package sqlrep
