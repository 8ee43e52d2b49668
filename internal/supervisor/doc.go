// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor provides process supervision for Reelmatch using suture v4.

The tree organizes long-running services into three layers:

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── PosterCacheGCService (if the Badger poster cache is on disk)
	├── BackgroundSupervisor ("background-layer")
	│   └── PosterWarmupService (if POSTER_WARMUP_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are
logged through sutureslog into the zerolog-backed slog handler from the
logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	tree.AddBackgroundService(services.NewPosterWarmupService(warmer, catalogIDs, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
