// Package domain contains the Task entity and the value types used to
// describe changes to it. It has no knowledge of storage or transport.
package domain
