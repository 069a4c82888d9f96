// Package store defines the TaskStore persistence contract and the error
// kinds every implementation must classify its failures into. Concrete
// adapters live under internal/platform.
package store
