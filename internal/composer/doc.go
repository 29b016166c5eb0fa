// Package composer is the typed query façade: one generic Builder per
// entity type, translating typed clause calls into mutations of an
// untyped sqlrep.Query.
//
// A Builder holds the clause tree, it does not extend it (composition,
// not inheritance): the untyped surface is reachable through Rep, but
// every typed method resolves its field references through the entity's
// schema descriptor first, so column identifiers in the tree are always
// the resolved ones: tag overrides applied, excluded fields
// unreachable.
//
// Methods that resolve references or validate input return an error and
// apply nothing on failure. Infallible methods return the builder alone
// and chain freely. Clause order does not matter; only the pagination
// quantities rewrite each other (Page overwrites Limit/Offset and vice
// versa, both set the same two numbers).
//
// A Builder wraps one mutable clause tree and is not safe for concurrent
// use. Build one per goroutine.
package composer
