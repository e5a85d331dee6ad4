// Package provider defines the translation provider interface and
// implementations.
package provider

import "github.com/kiranahq/lingocache"

// Provider is the interface to the external translation backend.
// This is an alias to the main package interface for convenience.
type Provider = lingocache.Provider
