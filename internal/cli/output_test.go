package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestFprintJSON(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil value", nil, "null\n"},
		{"empty slice", []string{}, "[]\n"},
		{"string slice", []string{"a"}, "[\n  \"a\"\n]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := fprintJSON(&buf, tt.input); err != nil {
				t.Fatalf("fprintJSON() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFprintJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := fprintJSON(&buf, map[string]int{"count": 3}); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if got["count"] != 3 {
		t.Errorf("count = %d, want 3", got["count"])
	}
}

func TestNewTable_AlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := newTable(&buf)
	fmt.Fprintln(w, "ID\tEMAIL")
	fmt.Fprintln(w, "a\tuser@example.com")
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Index(lines[0], "EMAIL") != strings.Index(lines[1], "user@example.com") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}
