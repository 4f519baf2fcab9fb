package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: empty string -> 0 meshes, 0 errors.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := newTestApp(t)
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}

	b, err := json.Marshal(app.EvaluateScript(""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"skeletons":[]`) {
		t.Errorf("expected empty skeleton list in %s", b)
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax errors carry a message.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := newTestApp(t)

	// Put valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(+ 1 2)\n(shape \"test\""
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}

	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

// ---------------------------------------------------------------------------
// 3. Invalid dimensions are rejected before tessellation.
// ---------------------------------------------------------------------------

func TestE2EInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"zero box", `(shape "flat" (box 0 10 10))`},
		{"negative sphere", `(shape "neg" (sphere -4))`},
		{"zero cylinder", `(shape "thin" (cylinder 10 0))`},
	}
	app := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := app.Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// 4. Rapid evaluation: no panics across alternating valid and broken input.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Calls are sequential because zygomys keeps global state that is not
	// safe for concurrent sandbox creation.
	app := newTestApp(t)

	sources := []string{
		`(shape "ok" (box 10 5 5))`,
		`(shape "broken"`,
		``,
		`(translate 3 :by (vec3 1 1 1))`,
		`(shape "also-ok" (sphere 4))`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(undefined-func 1 2 3)`,
		`(shape "last" (cylinder 8 2))`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

// ---------------------------------------------------------------------------
// 5. Comments and whitespace only.
// ---------------------------------------------------------------------------

func TestE2ECommentsOnly(t *testing.T) {
	app := newTestApp(t)

	source := `
;; This is a comment
;; Another comment
; And another
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for comments-only source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for comments-only source, got %d", len(result.Meshes))
	}
}

func TestE2EWhitespaceOnly(t *testing.T) {
	app := newTestApp(t)
	result := app.Evaluate("   \n\t\n   \n")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for whitespace-only source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for whitespace-only source, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 6. Arithmetic in definitions.
// ---------------------------------------------------------------------------

func TestE2ENestedArithmeticDef(t *testing.T) {
	app := newTestApp(t)

	source := `
(def base-length 40)
(def margin 4)
(def inner-length (- base-length (* 2 margin)))
(shape "inner-panel" (box inner-length 20 (/ 19 2)))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if result.Meshes[0].PartName != "inner_panel" && result.Meshes[0].PartName != "inner-panel" {
		t.Errorf("unexpected part name %q", result.Meshes[0].PartName)
	}
}

// ---------------------------------------------------------------------------
// 7. Palette wraps for many shapes.
// ---------------------------------------------------------------------------

func TestE2EColorPaletteWrapping(t *testing.T) {
	app := newTestApp(t)

	var src strings.Builder
	names := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}
	for _, n := range names {
		src.WriteString(`(shape "` + n + `" (box 4 4 4))` + "\n")
	}
	result := app.Evaluate(src.String())

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != len(names) {
		t.Fatalf("expected %d meshes, got %d", len(names), len(result.Meshes))
	}
	if result.Meshes[0].Color != result.Meshes[len(colorPalette)].Color {
		t.Errorf("palette should wrap after %d colors", len(colorPalette))
	}
}

// ---------------------------------------------------------------------------
// 8. Unused solids are reported as warnings and do not block meshing.
// ---------------------------------------------------------------------------

func TestE2EOrphanWarning(t *testing.T) {
	app := newTestApp(t)

	result := app.Evaluate(`
(def spare (box 2 2 2))
(shape "ball" (sphere 5))
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0].Message, "orphan") {
		t.Errorf("expected an orphan warning, got %q", result.Warnings[0].Message)
	}

	clean := app.Evaluate(`(shape "ball" (sphere 5))`)
	if len(clean.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", clean.Warnings)
	}
}
