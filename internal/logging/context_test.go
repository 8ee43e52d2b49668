// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateRequestID()); got != 36 {
		t.Errorf("request id length = %d, want 36", got)
	}
	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation id length = %d, want 8", got)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request ids should be unique")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context returned %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want req-1", got)
	}
}

func TestCtxAddsIDs(t *testing.T) {
	buf := captureGlobal(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithNewCorrelationID(ctx)
	Ctx(ctx).Info().Msg("handled")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("request_id missing: %s", out)
	}
	if !strings.Contains(out, `"correlation_id":"`+CorrelationIDFromContext(ctx)+`"`) {
		t.Errorf("correlation_id missing: %s", out)
	}
}
