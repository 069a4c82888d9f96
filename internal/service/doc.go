// Package service contains the application use cases for tasks.
//
// TaskService sits between the HTTP handlers and the store.TaskStore
// capability. It holds no state of its own and does not validate, retry,
// cache or wrap: every call is forwarded to the store it was constructed
// with, and the store's result and error are returned exactly as produced.
// Which store backs the service is decided once in cmd/server.
package service
