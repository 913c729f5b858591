package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []Record {
	clipped := 0
	return []Record{
		{
			Name:         "fox.txt",
			Profile:      "ssd1306",
			Font:         "classic",
			MaxWidth:     54,
			Capacity:     64,
			Text:         "The quick\nbrown fox",
			Lines:        []string{"The quick", "brown fox"},
			Breaks:       []int{9},
			Written:      19,
			Measurements: 3,
			Clipped:      &clipped,
		},
		{
			Name:      "stdin",
			Font:      "cells",
			MaxWidth:  10,
			Capacity:  4,
			Text:      "abc",
			Lines:     []string{"abc"},
			Written:   3,
			Truncated: true,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Format
		wantErr bool
	}{
		"json":                 {in: "json", want: FormatJSON},
		"upper yaml":           {in: "YAML", want: FormatYAML},
		"padded":               {in: " markdown ", want: FormatMarkdown},
		"invalid":              {in: "xml", wantErr: true},
		"text is not a report": {in: "text", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllFormatsValid(t *testing.T) {
	for _, f := range AllFormats() {
		if !f.IsValid() {
			t.Errorf("%s.IsValid() = false", f)
		}
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(DefaultOptions()).Export(sampleRecords(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got []Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d records, want 2", len(got))
	}
	if d := cmp.Diff([]int{9}, got[0].Breaks); d != "" {
		t.Errorf("breaks mismatch (-want +got):\n%s", d)
	}
	if got[0].Clipped == nil || *got[0].Clipped != 0 {
		t.Errorf("Clipped = %v, want 0", got[0].Clipped)
	}
	if got[1].Clipped != nil {
		t.Errorf("unchecked record has Clipped = %v", *got[1].Clipped)
	}
	if !strings.Contains(buf.String(), `"breaks": []`) {
		t.Errorf("expected empty breaks to encode as [], got:\n%s", buf.String())
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{Format: FormatYAML, Pretty: true}).Export(sampleRecords(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got[0]["name"] != "fox.txt" || got[1]["truncated"] != true {
		t.Errorf("unexpected YAML records: %v", got)
	}
	if _, ok := got[1]["profile"]; ok {
		t.Error("empty profile should be omitted")
	}
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{Format: FormatMarkdown}).Export(sampleRecords(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Wrapped Text",
		"Total: 2 input(s)",
		"## fox.txt",
		"| Profile | ssd1306 |",
		"| Max width | 54px |",
		"| Lines | 2 |",
		"| Clipped glyphs | 0 |",
		"```\nThe quick\nbrown fox\n```",
		"| Truncated | yes |",
		"---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestExportEmptyAndInvalid(t *testing.T) {
	var buf bytes.Buffer
	if err := New(DefaultOptions()).Export(nil, &buf); err != nil {
		t.Fatalf("Export(nil) error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Export(nil) = %q, want []", buf.String())
	}

	if err := New(Options{Format: "xml"}).Export(nil, &buf); err == nil {
		t.Error("expected error for unsupported format")
	}
}
