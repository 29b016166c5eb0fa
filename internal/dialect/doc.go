// Package dialect renders a sqlrep.Query to SQL text for a specific
// database engine.
//
// Engines differ where engines actually differ: placeholder format
// (? vs $n), the case-insensitive pattern match (ILIKE, collation
// default, LOWER-folding), and pagination without a limit. Everything
// else renders identically.
//
// Two rules are inherited from this repository's history and hold for
// every engine:
//
//   - every value is bound as a driver parameter, never interpolated
//     into the SQL text;
//   - rendering is deterministic: the same clause tree always yields
//     byte-identical SQL, which is what the golden tests pin down.
//
// An empty IN list renders as the constant predicate `1 = 0` (`1 = 1`
// for NOT IN); no target engine accepts `IN ()`.
package dialect
