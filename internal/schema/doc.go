// Package schema resolves entity struct types into table and column
// identifiers.
//
// A Descriptor is the resolved metadata for one entity type: its table
// identifier and the ordered list of column-bearing fields. Resolution
// honors declarative overrides carried on the type:
//
//   - table: the entity type may implement Tabler to override the bare
//     type name. A blank override is a configuration error, not a
//     fallback.
//   - column: the `db` struct tag overrides the bare field name
//     (`db:"user_name"`).
//   - key marker: the `pk` tag option flags identity fields
//     (`db:"id,pk"` or `db:",pk"`).
//   - exclusion: `db:"-"` removes the field from the column set
//     entirely; it never appears in select lists, insert payloads, or
//     column enumerations.
//
// Descriptors are computed once per type per process and cached in a
// process-wide map. Entries are immutable after the first write;
// concurrent first requests for the same type may race, but computation
// is deterministic so the cache converges to a single canonical entry.
package schema
