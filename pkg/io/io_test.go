package io

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
)

var want = []dataset.RawObservation{
	{Category: 2, Value: 30, User: "bob"},
	{Category: 1, Value: 10, User: "alice"},
}

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json list", FormatJSON, `[{"category":2,"value":30,"user":"bob"},{"category":1,"value":10,"user":"alice"}]`},
		{"json object", FormatJSON, `{"observations":[{"category":2,"value":30,"user":"bob"},{"category":1,"value":10,"user":"alice"}]}`},
		{"yaml list", FormatYAML, "- {category: 2, value: 30, user: bob}\n- {category: 1, value: 10, user: alice}\n"},
		{"yaml object", FormatYAML, "observations:\n  - category: 2\n    value: 30\n    user: bob\n  - category: 1\n    value: 10\n    user: alice\n"},
		{"toml", FormatTOML, "[[observations]]\ncategory = 2\nvalue = 30\nuser = \"bob\"\n\n[[observations]]\ncategory = 1\nvalue = 10\nuser = \"alice\"\n"},
		{"csv", FormatCSV, "category,value,user\n2,30,bob\n1,10,alice\n"},
		{"csv reordered", FormatCSV, "User, Value, Category, note\nbob,30,2,x\nalice,10,1,y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Read() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatCSV} {
		input := map[Format]string{FormatJSON: "[]", FormatYAML: "", FormatCSV: ""}[f]
		got, err := Read(strings.NewReader(input), f)
		if err != nil {
			t.Fatalf("Read(%s) error = %v", f, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Read(%s) = %#v, want empty non-nil slice", f, got)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"bad json", FormatJSON, `[{"category":`},
		{"json wrong type", FormatJSON, `[{"category":"x"}]`},
		{"bad toml", FormatTOML, "[[observations]\n"},
		{"csv missing column", FormatCSV, "category,value\n1,2\n"},
		{"csv bad number", FormatCSV, "category,value,user\none,2,a\n"},
		{"csv short row", FormatCSV, "category,value,user\n1,2\n"},
		{"unknown format", Format("xml"), "<x/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data.json", FormatJSON, false},
		{"DATA.CSV", FormatCSV, false},
		{"a/b/c.yml", FormatYAML, false},
		{"c.yaml", FormatYAML, false},
		{"c.toml", FormatTOML, false},
		{"c.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obs.csv")
	if err := os.WriteFile(path, []byte("category,value,user\n2,30,bob\n1,10,alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Import() = %+v, want %+v", got, want)
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSON(t *testing.T) {
	summaries := []dataset.CategorySummary{
		{Category: 1, Percentage: 25, Users: []string{"a"}},
		{Category: 2, Percentage: math.NaN()},
	}

	var buf bytes.Buffer
	if err := WriteJSON(summaries, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got[0]["percentage"] != 25.0 {
		t.Errorf("percentage = %v, want 25", got[0]["percentage"])
	}
	if got[1]["percentage"] != nil {
		t.Errorf("NaN percentage = %v, want null", got[1]["percentage"])
	}
	if users, ok := got[1]["users"].([]any); !ok || len(users) != 0 {
		t.Errorf("users = %v, want []", got[1]["users"])
	}
}

func TestWriteCSV(t *testing.T) {
	summaries := []dataset.CategorySummary{
		{Category: 1, Percentage: 40, Users: []string{"a", "b"}},
		{Category: 2.5, Percentage: 60, Users: []string{"c"}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(summaries, &buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "category,percentage,users\n1,40,a;b\n2.5,60,c\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	summaries := dataset.Aggregate(want)

	if err := Export(summaries, filepath.Join(dir, "out.json")); err != nil {
		t.Fatalf("Export(json) error = %v", err)
	}
	if err := Export(summaries, filepath.Join(dir, "out.toml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(toml) error = %v, want INVALID_FORMAT", err)
	}
}
