// Package kernel contains the shared value objects of the fulfillment domain:
// identifiers, tenant scope, aggregate versions, and warehouse geometry.
//
// Everything in this package is immutable and safe for concurrent use. The zero
// value of every type is invalid; instances must come from the package
// constructors so invariants hold from the moment of creation.
package kernel
