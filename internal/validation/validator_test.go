// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleQuery struct {
	Title string `validate:"notblank,max=10"`
	K     int    `validate:"min=1,max=50"`
	Mode  string `validate:"omitempty,oneof=fast full"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        sampleQuery
		wantField string
		wantTag   string
	}{
		{name: "valid", in: sampleQuery{Title: "Heat", K: 5}},
		{name: "blank title", in: sampleQuery{Title: "   ", K: 5}, wantField: "Title", wantTag: "notblank"},
		{name: "title too long", in: sampleQuery{Title: "Dr. Strangelove", K: 5}, wantField: "Title", wantTag: "max"},
		{name: "k too small", in: sampleQuery{Title: "Heat", K: 0}, wantField: "K", wantTag: "min"},
		{name: "k too large", in: sampleQuery{Title: "Heat", K: 51}, wantField: "K", wantTag: "max"},
		{name: "bad mode", in: sampleQuery{Title: "Heat", K: 1, Mode: "slow"}, wantField: "Mode", wantTag: "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.in)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %T (%v)", err, err)
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(verr.Fields), verr)
			}
			f := verr.Fields[0]
			if !strings.HasSuffix(f.Field, tt.wantField) || f.Tag != tt.wantTag {
				t.Errorf("got field=%s tag=%s, want %s/%s", f.Field, f.Tag, tt.wantField, tt.wantTag)
			}
			if f.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestError_Details(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&sampleQuery{Title: "", K: 0})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	fields, ok := verr.Details()["fields"].([]map[string]string)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details fields = %#v", verr.Details())
	}
	if !strings.Contains(verr.Error(), ";") {
		t.Errorf("combined message should join with ';': %q", verr.Error())
	}
}
