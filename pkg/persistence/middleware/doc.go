// Package middleware decorates a ports.ProjectStore with logging and
// Prometheus instrumentation. Decorated stores still satisfy the store
// contract and can be wrapped in any order with Chain.
package middleware
