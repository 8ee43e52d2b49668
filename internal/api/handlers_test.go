// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// envelope decodes APIResponse with a typed payload.
type envelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
	Meta    *APIMeta  `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (body %s)", err, w.Body.String())
	}
	return env
}

// fourMovies: similarity decays with index distance, so "Alien" (index 3)
// ranks Aliens, Titanic, Avatar.
func fourMovies(t *testing.T) *catalog.Catalog {
	t.Helper()
	movies := []catalog.Movie{
		{ID: 19995, Title: "Avatar", Overview: "Pandora."},
		{ID: 597, Title: "Titanic"},
		{ID: 679, Title: "Aliens"},
		{ID: 348, Title: "Alien"},
	}
	n := len(movies)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j := range matrix[i] {
			d := i - j
			if d < 0 {
				d = -d
			}
			matrix[i][j] = 1 / float64(1+d)
		}
	}
	c, err := catalog.New(movies, matrix)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// fakePosters serves fixed URLs and counts lookups.
type fakePosters struct {
	urls  map[int]string
	err   error
	calls atomic.Int64
}

func (f *fakePosters) PosterURL(_ context.Context, movieID int) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.urls[movieID], nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeBreaker string

func (b fakeBreaker) State() string { return string(b) }

type fakeCacheReporter struct {
	stats poster.CacheStats
	err   error
}

func (f fakeCacheReporter) CacheStats(context.Context) (poster.CacheStats, error) {
	return f.stats, f.err
}

func newTestHandler(t *testing.T, deps HandlerDeps) *Handler {
	t.Helper()
	if deps.Catalog == nil {
		deps.Catalog = fourMovies(t)
	}
	if deps.Engine == nil {
		engine, err := recommend.NewEngine(deps.Catalog, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		deps.Engine = engine
	}
	return NewHandler(deps)
}

func newTestServer(t *testing.T, deps HandlerDeps) http.Handler {
	t.Helper()
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	return NewRouter(newTestHandler(t, deps), mw).Setup()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRecommendations_RankedWithPosters(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{urls: map[int]string{679: "https://img.example/aliens.jpg"}}
	srv := newTestServer(t, HandlerDeps{Posters: posters})

	w := get(t, srv, "/api/v1/recommendations?title=Alien")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	env := decode[RecommendationsResponse](t, w)
	if !env.Success {
		t.Fatal("expected success")
	}
	if env.Data.Query.Title != "Alien" || env.Data.Query.ID != 348 || env.Data.Query.Index != 3 {
		t.Errorf("query = %+v", env.Data.Query)
	}

	want := []struct {
		title string
		id    int
	}{{"Aliens", 679}, {"Titanic", 597}, {"Avatar", 19995}}
	if len(env.Data.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(env.Data.Items), len(want))
	}
	for i, w := range want {
		item := env.Data.Items[i]
		if item.Title != w.title || item.ID != w.id || item.Rank != i+1 {
			t.Errorf("item %d = %+v, want %s (%d)", i, item, w.title, w.id)
		}
	}

	if p := env.Data.Items[0].PosterURL; p == nil || *p != "https://img.example/aliens.jpg" {
		t.Errorf("Aliens poster = %v", p)
	}
	if env.Data.Items[1].PosterURL != nil {
		t.Errorf("Titanic poster = %v, want null", *env.Data.Items[1].PosterURL)
	}
	if got := posters.calls.Load(); got != 3 {
		t.Errorf("poster lookups = %d, want 3", got)
	}
	if env.Data.K != recommend.DefaultK {
		t.Errorf("k = %d, want default %d", env.Data.K, recommend.DefaultK)
	}
}

func TestRecommendations_PosterFailureIsNull(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{Posters: &fakePosters{err: errors.New("tmdb down")}})

	w := get(t, srv, "/api/v1/recommendations?title=Titanic")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[RecommendationsResponse](t, w)
	if len(env.Data.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(env.Data.Items))
	}
	for _, item := range env.Data.Items {
		if item.PosterURL != nil {
			t.Errorf("%s poster = %v, want null", item.Title, *item.PosterURL)
		}
	}
}

func TestRecommendations_PostersDisabled(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{urls: map[int]string{679: "x"}}
	srv := newTestServer(t, HandlerDeps{Posters: posters})

	w := get(t, srv, "/api/v1/recommendations?title=Alien&posters=false")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := posters.calls.Load(); got != 0 {
		t.Errorf("poster lookups = %d, want 0", got)
	}
}

func TestRecommendations_Errors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown title", "/api/v1/recommendations?title=Nope", http.StatusNotFound, ErrCodeNotFound},
		{"title is case sensitive", "/api/v1/recommendations?title=alien", http.StatusNotFound, ErrCodeNotFound},
		{"missing title", "/api/v1/recommendations", http.StatusBadRequest, ErrCodeValidationFailed},
		{"non-numeric k", "/api/v1/recommendations?title=Alien&k=abc", http.StatusBadRequest, ErrCodeValidationFailed},
		{"negative k", "/api/v1/recommendations?title=Alien&k=-1", http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad posters flag", "/api/v1/recommendations?title=Alien&posters=maybe", http.StatusBadRequest, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := get(t, srv, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			env := decode[json.RawMessage](t, w)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendations_K(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{})

	tests := []struct {
		k    string
		want int
	}{
		{"1", 1},
		{"2", 2},
		{"0", 3},
		{"100", 3},
	}
	for _, tt := range tests {
		t.Run("k="+tt.k, func(t *testing.T) {
			t.Parallel()

			w := get(t, srv, "/api/v1/recommendations?posters=false&title=Avatar&k="+tt.k)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			env := decode[RecommendationsResponse](t, w)
			if len(env.Data.Items) != tt.want {
				t.Errorf("items = %d, want %d", len(env.Data.Items), tt.want)
			}
			for _, item := range env.Data.Items {
				if item.Title == "Avatar" {
					t.Error("query movie must not be recommended")
				}
			}
		})
	}
}

func TestRecommendations_TitleWithSpaces(t *testing.T) {
	t.Parallel()

	movies := []catalog.Movie{{ID: 1, Title: "The Dark Knight"}, {ID: 2, Title: "Batman Begins"}}
	cat, err := catalog.New(movies, [][]float64{{1, 0.9}, {0.9, 1}})
	if err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, HandlerDeps{Catalog: cat})

	w := get(t, srv, "/api/v1/recommendations?title=The+Dark+Knight")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[RecommendationsResponse](t, w)
	if len(env.Data.Items) != 1 || env.Data.Items[0].Title != "Batman Begins" {
		t.Errorf("items = %+v", env.Data.Items)
	}
}

func TestMovies_Pagination(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{})

	w := get(t, srv, "/api/v1/movies?limit=2&offset=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[[]MovieSummary](t, w)
	if len(env.Data) != 2 || env.Data[0].Title != "Titanic" || env.Data[1].Title != "Aliens" {
		t.Errorf("movies = %+v", env.Data)
	}
	if env.Data[0].Index != 1 {
		t.Errorf("index = %d, want 1", env.Data[0].Index)
	}
	p := env.Meta.Pagination
	if p == nil || p.Total != 4 || p.Count != 2 || !p.HasMore {
		t.Errorf("pagination = %+v", p)
	}

	w = get(t, srv, "/api/v1/movies?limit=2&offset=3")
	env = decode[[]MovieSummary](t, w)
	if len(env.Data) != 1 || env.Data[0].Title != "Alien" || env.Data[0].Index != 3 {
		t.Errorf("last page = %+v", env.Data)
	}
	if p := env.Meta.Pagination; p.Count != 1 || p.HasMore {
		t.Errorf("last page pagination = %+v", p)
	}

	w = get(t, srv, "/api/v1/movies?offset=10")
	env = decode[[]MovieSummary](t, w)
	if len(env.Data) != 0 || env.Meta.Pagination.HasMore {
		t.Errorf("past the end: %+v %+v", env.Data, env.Meta.Pagination)
	}
}

func TestMovies_InvalidParams(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{})
	for _, target := range []string{
		"/api/v1/movies?limit=0",
		"/api/v1/movies?limit=1001",
		"/api/v1/movies?offset=-1",
		"/api/v1/movies?limit=ten",
	} {
		if w := get(t, srv, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestSearchMovies(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{})

	w := get(t, srv, "/api/v1/movies/search?q=ali")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[[]MovieSummary](t, w)
	got := map[string]int{}
	for _, m := range env.Data {
		got[m.Title] = m.Index
	}
	if len(got) != 2 || got["Alien"] != 3 || got["Aliens"] != 2 {
		t.Errorf("search results = %+v", env.Data)
	}

	if w := get(t, srv, "/api/v1/movies/search?q=%20%20"); w.Code != http.StatusBadRequest {
		t.Errorf("blank query: status = %d, want 400", w.Code)
	}
	if w := get(t, srv, "/api/v1/movies/search?q=zzz"); w.Code != http.StatusOK {
		t.Errorf("no match: status = %d, want 200", w.Code)
	}
}

func TestSearchMovies_DuplicateIDs(t *testing.T) {
	t.Parallel()

	movies := []catalog.Movie{
		{ID: 10, Title: "Heat"},
		{ID: 10, Title: "Heathers"},
		{ID: 11, Title: "Hook"},
	}
	matrix := [][]float64{{1, 0.5, 0.2}, {0.5, 1, 0.4}, {0.2, 0.4, 1}}
	cat, err := catalog.New(movies, matrix)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	srv := newTestServer(t, HandlerDeps{Catalog: cat})

	env := decode[[]MovieSummary](t, get(t, srv, "/api/v1/movies/search?q=heathers"))
	if len(env.Data) != 1 || env.Data[0].Index != 1 || env.Data[0].ID != 10 {
		t.Errorf("search results = %+v, want Heathers at index 1", env.Data)
	}
}

func TestMovie(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{urls: map[int]string{19995: "https://img.example/avatar.jpg"}}
	srv := newTestServer(t, HandlerDeps{Posters: posters})

	w := get(t, srv, "/api/v1/movies/19995")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[MovieDetail](t, w)
	if env.Data.Title != "Avatar" || env.Data.Overview != "Pandora." || env.Data.Index != 0 {
		t.Errorf("movie = %+v", env.Data)
	}
	if env.Data.PosterURL == nil || *env.Data.PosterURL != "https://img.example/avatar.jpg" {
		t.Errorf("poster = %v", env.Data.PosterURL)
	}

	if w := get(t, srv, "/api/v1/movies/597"); decode[MovieDetail](t, w).Data.PosterURL != nil {
		t.Error("expected null poster for Titanic")
	}
	if w := get(t, srv, "/api/v1/movies/424242"); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}
	if w := get(t, srv, "/api/v1/movies/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{Version: "1.2.3"})

	w := get(t, srv, "/api/v1/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	env := decode[HealthStatus](t, w)
	if env.Data.Status != "healthy" || env.Data.CatalogSize != 4 || env.Data.Version != "1.2.3" {
		t.Errorf("health = %+v", env.Data)
	}
	if env.Data.TMDBEnabled || env.Data.TMDBConnected != nil {
		t.Errorf("tmdb fields set without a client: %+v", env.Data)
	}

	if w := get(t, srv, "/api/v1/health/live"); w.Code != http.StatusOK {
		t.Errorf("live status = %d", w.Code)
	}
	if w := get(t, srv, "/api/v1/health/ready"); w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}
}

func TestHealth_Degraded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		deps HandlerDeps
		want string
	}{
		{"tmdb reachable", HandlerDeps{TMDB: fakePinger{}, Breaker: fakeBreaker("closed")}, "healthy"},
		{"tmdb unreachable", HandlerDeps{TMDB: fakePinger{err: errors.New("dial")}}, "degraded"},
		{"breaker open", HandlerDeps{Breaker: fakeBreaker("open")}, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := get(t, newTestServer(t, tt.deps), "/api/v1/health")
			env := decode[HealthStatus](t, w)
			if env.Data.Status != tt.want {
				t.Errorf("status = %q, want %q", env.Data.Status, tt.want)
			}
		})
	}
}

func TestNotReady(t *testing.T) {
	t.Parallel()

	h := NewHandler(HandlerDeps{})
	srv := NewRouter(h, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})).Setup()

	if w := get(t, srv, "/api/v1/health/ready"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", w.Code)
	}
	if w := get(t, srv, "/api/v1/health/live"); w.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", w.Code)
	}
	for _, target := range []string{"/api/v1/movies", "/api/v1/recommendations?title=Alien", "/api/v1/stats"} {
		if w := get(t, srv, target); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", target, w.Code)
		}
	}
	env := decode[HealthStatus](t, get(t, srv, "/api/v1/health"))
	if env.Data.Status != "unhealthy" {
		t.Errorf("health = %q, want unhealthy", env.Data.Status)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, HandlerDeps{Breaker: fakeBreaker("half-open")})

	get(t, srv, "/api/v1/recommendations?title=Alien&posters=false")
	get(t, srv, "/api/v1/recommendations?title=Alien&posters=false")
	get(t, srv, "/api/v1/recommendations?title=Nope")

	env := decode[ServiceStats](t, get(t, srv, "/api/v1/stats"))
	if env.Data.Engine.Requests != 3 || env.Data.Engine.CacheHits != 1 || env.Data.Engine.NotFound != 1 {
		t.Errorf("engine stats = %+v", env.Data.Engine)
	}
	if rate := env.Data.Engine.CacheHitRate; env.Data.Engine.Succeeded != 2 || rate < 0.33 || rate > 0.34 {
		t.Errorf("engine stats = %+v", env.Data.Engine)
	}
	if env.Data.PosterCircuit != "half-open" || env.Data.CatalogSize != 4 {
		t.Errorf("stats = %+v", env.Data)
	}
	if env.Data.PosterCache != nil {
		t.Errorf("poster_cache = %+v, want omitted without a reporter", env.Data.PosterCache)
	}
}

func TestStats_PosterCache(t *testing.T) {
	t.Parallel()

	want := poster.CacheStats{
		MemoryEntries: 3,
		MemoryHits:    6,
		MemoryMisses:  2,
		MemoryHitRate: 0.75,
		Persistent:    true,
		StoredPosters: 40,
		StoredMissing: 2,
	}

	tests := []struct {
		name     string
		reporter fakeCacheReporter
		want     *poster.CacheStats
	}{
		{"reported", fakeCacheReporter{stats: want}, &want},
		{"count failure omits field", fakeCacheReporter{err: errors.New("badger closed")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, HandlerDeps{PosterCache: tt.reporter})

			rec := get(t, srv, "/api/v1/stats")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			env := decode[ServiceStats](t, rec)
			switch {
			case tt.want == nil && env.Data.PosterCache != nil:
				t.Errorf("poster_cache = %+v, want omitted", env.Data.PosterCache)
			case tt.want != nil && (env.Data.PosterCache == nil || *env.Data.PosterCache != *tt.want):
				t.Errorf("poster_cache = %+v, want %+v", env.Data.PosterCache, tt.want)
			}
			if env.Data.CatalogSize != 4 {
				t.Errorf("catalog_size = %d, want 4", env.Data.CatalogSize)
			}
		})
	}
}
