// Package mcp exposes a workspace as a Model Context Protocol server.
//
// Each layer variant and the single-control menu job is a tool taking the
// same arguments as a manifest job entry plus the project ID.
package mcp
