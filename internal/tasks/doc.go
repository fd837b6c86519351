// Package tasks resolves tracks against every configured search backend with real-time progress reporting.
//
// # Core Operations
//
// The [Resolver] interface defines two operations:
//
//  1. [Resolver.Resolve] : One track against all backends
//     - Searches every backend concurrently
//     - Records a failing backend in its [BackendResult] instead of failing the track
//     - [ResolveResult.Candidates] merges the backends by accuracy, first backend wins duplicates
//
//  2. [Resolver.BulkResolve] : A list of tracks
//     - Worker pool paced by a shared rate limiter
//     - Counts resolved, unresolved and failed tracks
//     - Optionally writes a report through the formatter package
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [Engine] implements [Resolver] over a list of [services.Service] backends.
package tasks
