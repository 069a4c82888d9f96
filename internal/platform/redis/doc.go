// Package redis implements store.TaskStore on Redis using
// github.com/redis/go-redis/v9.
//
// All tasks live in a single hash (TasksKey); each field is a task ID and
// each value the JSON-encoded task. Create claims a new field with HSETNX.
// Update and Delete read the field, then write it back through a Lua
// compare-and-swap script that only succeeds if the field is unchanged.
// Writes to other tasks never interfere. A write racing on the same task is
// retried a bounded number of times before the store reports store.ErrConflict.
package redis
