// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/sitepulse/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_TrackRequestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input models.TrackRequest
	}{
		{"empty body", models.TrackRequest{}},
		{"typical pageview", models.TrackRequest{
			Type:      "pageview",
			Path:      "/about.html",
			Referrer:  "https://www.google.com/",
			Device:    "Mozilla/5.0 (iPhone)",
			SessionID: "3f1c2b8e-0d1a-4b5c-9e7f-112233445566",
		}},
		{"custom event type", models.TrackRequest{Type: "cta.click:signup-v2"}},
		{"free-form event type", models.TrackRequest{Type: "page view"}},
		{"event type with punctuation", models.TrackRequest{Type: "click!"}},
		{"long session id", models.TrackRequest{SessionID: strings.Repeat("s", 200)}},
		{"page alias", models.TrackRequest{Page: "/events"}},
		{"path at limit", models.TrackRequest{Path: "/" + strings.Repeat("a", 2047)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_TrackRequestInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     models.TrackRequest
		wantField string
		wantTag   string
	}{
		{"path too long", models.TrackRequest{Path: "/" + strings.Repeat("a", 2048)}, "path", "max"},
		{"page too long", models.TrackRequest{Page: strings.Repeat("p", 2049)}, "page", "max"},
		{"referrer too long", models.TrackRequest{Referrer: strings.Repeat("r", 2049)}, "referrer", "max"},
		{"device too long", models.TrackRequest{Device: strings.Repeat("d", 1025)}, "device", "max"},
		{"session too long", models.TrackRequest{SessionID: strings.Repeat("s", 513)}, "sessionId", "max"},
		{"type too long", models.TrackRequest{Type: strings.Repeat("t", 257)}, "type", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, err)
			}
		})
	}
}

func TestValidationError_Accessors(t *testing.T) {
	t.Parallel()

	input := models.TrackRequest{Path: strings.Repeat("a", 3000)}
	verr := ValidateStruct(&input)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want 1 entry", verr.Errors())
	}

	e := verr.Errors()[0]
	if e.Field() != "path" {
		t.Errorf("Field() = %q, want %q", e.Field(), "path")
	}
	if e.Tag() != "max" {
		t.Errorf("Tag() = %q, want %q", e.Tag(), "max")
	}
	if e.Param() != "2048" {
		t.Errorf("Param() = %q, want %q", e.Param(), "2048")
	}
	if v, ok := e.Value().(string); !ok || len(v) != 3000 {
		t.Errorf("Value() length = %d, want 3000", len(v))
	}
	if e.Error() != "path must be at most 2048 characters" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	if got := (&RequestValidationError{}).Error(); got != "validation failed" {
		t.Errorf("Error() = %q, want %q", got, "validation failed")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	req := models.TrackRequest{
		Type:      "page view",
		Path:      "/" + strings.Repeat("a", 3000),
		SessionID: strings.Repeat("s", 1000),
		Device:    "Mozilla/5.0",
	}

	got := Truncate(&req)
	if len(got) != 2 {
		t.Fatalf("Truncate() = %v, want [path sessionId]", got)
	}
	for _, want := range []string{"path", "sessionId"} {
		found := false
		for _, f := range got {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Truncate() = %v, missing %q", got, want)
		}
	}

	if len(req.Path) != 2048 || !strings.HasPrefix(req.Path, "/aaa") {
		t.Errorf("Path length = %d, want 2048", len(req.Path))
	}
	if len(req.SessionID) != 512 {
		t.Errorf("SessionID length = %d, want 512", len(req.SessionID))
	}
	if req.Type != "page view" || req.Device != "Mozilla/5.0" {
		t.Errorf("untouched fields changed: %+v", req)
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() after Truncate = %v, want nil", err)
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	t.Parallel()

	req := models.TrackRequest{Type: strings.Repeat("é", 300)}
	if got := Truncate(&req); len(got) != 1 || got[0] != "type" {
		t.Fatalf("Truncate() = %v, want [type]", got)
	}
	if n := len([]rune(req.Type)); n != 256 {
		t.Errorf("Type rune count = %d, want 256", n)
	}
}

func TestTruncate_NothingToDo(t *testing.T) {
	t.Parallel()

	req := models.TrackRequest{Type: "click!", SessionID: strings.Repeat("s", 200)}
	if got := Truncate(&req); got != nil {
		t.Errorf("Truncate() = %v, want nil", got)
	}
	if len(req.SessionID) != 200 {
		t.Errorf("SessionID length = %d, want 200", len(req.SessionID))
	}
}

func TestTruncate_IgnoresOtherTags(t *testing.T) {
	t.Parallel()

	in := rangeStruct{Limit: 500, Mode: "medium"}
	if got := Truncate(&in); got != nil {
		t.Errorf("Truncate() = %v, want nil", got)
	}
	if in.Limit != 500 || in.Mode != "medium" {
		t.Errorf("rangeStruct modified: %+v", in)
	}
}

type rangeStruct struct {
	Limit int    `json:"limit" validate:"min=1,max=100"`
	Mode  string `json:"mode" validate:"omitempty,oneof=fast slow"`
	Name  string `json:"-" validate:"required"`
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input rangeStruct
		want  string
	}{
		{"min", rangeStruct{Limit: 0, Name: "x"}, "limit must be at least 1"},
		{"max", rangeStruct{Limit: 101, Name: "x"}, "limit must be at most 100"},
		{"oneof", rangeStruct{Limit: 1, Mode: "medium", Name: "x"}, "mode must be one of: fast slow"},
		{"required uses struct name when json is -", rangeStruct{Limit: 1}, "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
