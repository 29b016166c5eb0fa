// Package fieldref resolves typed field accessors back to the schema
// field they denote.
//
// A Ref[T] is a closure that picks one field of the entity type T:
//
//	fieldref.Resolve(desc, func(u *User) any { return &u.Name }, "where")
//
// The canonical shape returns the field's address. A value-shaped body
// (`return u.Name`, or one layer of numeric widening such as
// `return int64(u.Age)`) is tolerated and resolves to the same field.
// Anything else (a constant, arithmetic, a method call, a multi-hop
// path, or an accessor reading several fields) fails with
// InvalidReferenceError.
//
// Resolution works on synthetic probe instances and never needs a real
// entity value. Results are not cached here: every call site builds a
// fresh closure, so identity-keyed caching would never hit. The
// member-to-column mapping is cached one layer down, in package schema.
package fieldref
