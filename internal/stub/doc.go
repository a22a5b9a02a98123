// Package stub is an in-memory development backend speaking the same wire
// contract as the production planning API: JSON entities with camelCase
// fields, {"detail": ...} error bodies, denormalized venue and tag objects
// on reads, and session authentication via the X-Session-Token header.
//
// It exists so the client stack can be exercised end to end without a real
// backend: planstub serves it, planctl and the package tests talk to it.
// State lives in process memory and is lost on restart.
package stub
