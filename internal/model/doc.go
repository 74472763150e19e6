// Package model defines the data structures shared across the pwnreport
// pipeline: the per-run CheckReport and the insertion-ordered collections
// that back it.
//
// The collections exist because the report format depends on iteration
// order: breach blocks appear in the order the breach name was first seen,
// and addresses appear in the order they were checked. Plain Go maps cannot
// provide either guarantee.
package model
