package core

// IDGenerator produces opaque unique identifiers for cards and transactions
type IDGenerator interface {
	NewID() string
}
