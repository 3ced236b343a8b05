/*
Package observability turns machine lifecycle events into metrics and structured logs.

Both Metrics.Hooks and LogHooks return domain.LifecycleHooks, so they compose with
hsm.WithHooks (which merges) or domain.MergeHooks.
*/
package observability
