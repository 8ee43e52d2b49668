// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP REST API for Reelmatch.

Endpoints:

  - GET /api/v1/health, /api/v1/health/live, /api/v1/health/ready
  - GET /api/v1/movies?limit&offset: catalog titles in catalog order
  - GET /api/v1/movies/search?q&limit: case-insensitive title prefix search
  - GET /api/v1/movies/{id}: one movie by TMDB id, with poster URL
  - GET /api/v1/recommendations?title&k&posters: ranked similar movies
  - GET /api/v1/stats: engine counters
  - GET /metrics: Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Unknown titles answer 404 NOT_FOUND. Malformed or out-of-range query
parameters answer 400 VALIDATION_FAILED with per-field details. Poster URLs
are null when no poster is available; poster failures never fail a request.

Usage:

	handler := api.NewHandler(api.HandlerDeps{
	    Catalog: cat,
	    Engine:  engine,
	    Posters: resolver,
	})
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	router := api.NewRouter(handler, mw, api.WithRequestTimeout(cfg.Server.Timeout))
	http.ListenAndServe(":8080", router.Setup())
*/
package api
