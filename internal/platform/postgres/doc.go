// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles query execution, mapping between rows and domain.Task, and the
// classification of driver errors into the store error kinds.
//
// The schema is managed by goose migrations embedded in the migrations
// subpackage.
package postgres
