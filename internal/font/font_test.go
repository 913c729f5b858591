package font

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
)

func TestClassicGlyph(t *testing.T) {
	tests := map[string]struct {
		size     int
		wantName string
		want     Glyph
		wantLine int
	}{
		"size 1": {
			size:     1,
			wantName: "classic",
			want:     Glyph{Width: 6, Height: 8, Advance: 6},
			wantLine: 8,
		},
		"size 3": {
			size:     3,
			wantName: "classicx3",
			want:     Glyph{Width: 18, Height: 24, Advance: 18},
			wantLine: 24,
		},
		"size clamps to 1": {
			size:     0,
			wantName: "classic",
			want:     Glyph{Width: 6, Height: 8, Advance: 6},
			wantLine: 8,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := Classic(tt.size)
			if f.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.wantName)
			}
			for _, r := range []rune{'A', ' ', 'é'} {
				if d := cmp.Diff(tt.want, f.Glyph(r)); d != "" {
					t.Errorf("Glyph(%q) mismatch (-want +got):\n%s", r, d)
				}
			}
			if f.LineHeight() != tt.wantLine {
				t.Errorf("LineHeight() = %d, want %d", f.LineHeight(), tt.wantLine)
			}
		})
	}
}

func TestCellsGlyph(t *testing.T) {
	f := Cells(8, 16)
	tests := map[string]struct {
		r    rune
		want Glyph
	}{
		"ascii":     {r: 'a', want: Glyph{Width: 8, Height: 16, Advance: 8}},
		"wide":      {r: '中', want: Glyph{Width: 16, Height: 16, Advance: 16}},
		"combining": {r: '\u0301', want: Glyph{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if d := cmp.Diff(tt.want, f.Glyph(tt.r)); d != "" {
				t.Errorf("Glyph(%q) mismatch (-want +got):\n%s", tt.r, d)
			}
		})
	}
}

func TestBasicFace(t *testing.T) {
	f, err := Load(Spec{Name: NameBasic})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := f.Glyph('M').Advance; got != 7 {
		t.Errorf("Advance('M') = %d, want 7", got)
	}
	if got := f.LineHeight(); got != 13 {
		t.Errorf("LineHeight() = %d, want 13", got)
	}
}

func TestGoRegularIsProportional(t *testing.T) {
	f, err := Load(Spec{Name: NameGoRegular, Size: 16})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	narrow, wide := f.Glyph('i'), f.Glyph('M')
	if narrow.Advance <= 0 || wide.Advance <= 0 {
		t.Fatalf("expected positive advances, got i=%d M=%d", narrow.Advance, wide.Advance)
	}
	if narrow.Advance >= wide.Advance {
		t.Errorf("expected 'i' (%d) narrower than 'M' (%d)", narrow.Advance, wide.Advance)
	}
	if !wide.Inked() {
		t.Error("expected 'M' to be inked")
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight() = %d, want > 0", f.LineHeight())
	}
	// Memoized lookups must agree.
	if d := cmp.Diff(wide, f.Glyph('M')); d != "" {
		t.Errorf("cached glyph mismatch (-want +got):\n%s", d)
	}
}

func TestLoadTTFFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatalf("failed to write font: %v", err)
	}

	f, err := Load(Spec{Name: NameTTF, Path: path, Size: 10})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Name() != NameTTF {
		t.Errorf("Name() = %q, want %q", f.Name(), NameTTF)
	}
	if f.Glyph('x').Advance <= 0 {
		t.Error("expected positive advance")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		spec    Spec
		wantErr error
	}{
		"unknown name":      {spec: Spec{Name: "comic"}, wantErr: ErrUnknownFont},
		"negative classic":  {spec: Spec{Name: NameClassic, Size: -2}, wantErr: ErrInvalidSize},
		"negative cell":     {spec: Spec{Name: NameCells, CellWidth: -1}, wantErr: ErrInvalidSize},
		"negative ttf size": {spec: Spec{Name: NameGoRegular, Size: -1}, wantErr: ErrInvalidSize},
		"missing ttf file":  {spec: Spec{Name: NameTTF, Path: filepath.Join(t.TempDir(), "none.ttf")}, wantErr: os.ErrNotExist},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(Spec{Name: "clasic"}); err == nil || !strings.Contains(err.Error(), `did you mean "classic"`) {
		t.Errorf("expected a suggestion for a mistyped name, got %v", err)
	}

	if _, err := Load(Spec{Name: NameTTF}); err == nil {
		t.Error("expected error for ttf without path")
	}
}

func TestLoadDefaultsToClassic(t *testing.T) {
	f, err := Load(Spec{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Name() != NameClassic {
		t.Errorf("Name() = %q, want %q", f.Name(), NameClassic)
	}
}

func TestAdvance(t *testing.T) {
	f := Classic(2)
	if got := Advance(f, "ab\ncd"); got != 48 {
		t.Errorf("Advance() = %d, want 48", got)
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"basic", "cells", "classic", "goregular", "ttf"}
	if d := cmp.Diff(want, Names()); d != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", d)
	}
}
