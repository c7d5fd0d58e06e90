// Package store provides the durable persistence collaborators for the
// order service: a JSON file store and a GORM-backed relational store,
// interchangeable behind the Store interface.
package store

import "github.com/handlersyss/BarSystem/internal/model"

// Store is the contract the order service persists through. Load runs once
// at startup; a store with nothing in it must return an empty state, not an
// error. Save is called after every mutating operation and must land the
// whole state or none of it.
type Store interface {
	Load() (*model.State, error)
	Save(*model.State) error
}
