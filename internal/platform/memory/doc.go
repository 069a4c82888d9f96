// Package memory provides an in-process implementation of store.TaskStore.
//
// TaskStore keeps tasks in a map guarded by a read/write mutex. It is used
// as the runnable backend when no database is configured and as the store
// behind service and API tests. All values crossing the package boundary
// are copies, so callers can never mutate stored state.
package memory
