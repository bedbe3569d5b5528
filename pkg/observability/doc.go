/*
Package observability turns build lifecycle events into metrics and logs.

Metrics registers prometheus collectors and exposes them as
domain.LifecycleHooks; LoggingHooks does the same for a slog.Logger. Both can
be merged and handed to fxforge.WithLifecycleHooks.
*/
package observability
