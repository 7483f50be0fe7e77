// Package models defines the domain records managed by the admin console.
// Identifiers are assigned by the server and immutable once set; every other
// field is mutable via update.
package models

// Entity is implemented by every record type that lives in a REST collection.
type Entity interface {
	// EntityID returns the server-assigned identifier, empty before creation.
	EntityID() string
}
