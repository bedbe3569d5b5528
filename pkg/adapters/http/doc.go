// Package http serves a workspace over a JSON API routed with chi.
//
// Jobs are posted in the manifest job syntax; layer and menu graphs are
// returned as Mermaid text; applied job reports are streamed over SSE.
package http
