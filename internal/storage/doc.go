// Package storage implements the storage engine: the composite-keyed
// registry of live entities and its whole-store persistence through a
// Backend. Two backends are provided, a single JSON document (the default)
// and a SQLite database holding the same snapshot.
//
// The engine does no locking. It is meant to be owned by one goroutine for
// the life of the process: opened at startup, closed at exit.
package storage
