// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for Reelmatch components.

Each wrapper implements suture.Service and fmt.Stringer:

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - PosterWarmupService: one warmup pass over the catalog, then
    suture.ErrDoNotRestart
  - PosterCacheGCService: periodic Badger value-log GC for the poster cache

Services depend on small interfaces (HTTPServer, PosterWarmer,
ValueLogCollector) so tests can substitute fakes.
*/
package services
