package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".JSON", FormatJSON, false},
		{"ndjson", FormatJSONLines, false},
		{"csv", FormatCSV, false},
		{"tsv", FormatTSV, false},
		{"", FormatAuto, false},
		{"xlsx", FormatAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	if f, _ := DetectFormat("data/people.csv"); f != FormatCSV {
		t.Errorf("expected csv, got %s", f)
	}
	if _, err := DetectFormat("README"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "people.json", `[
		{"name": "Ann", "age": 31, "active": true},
		{"name": "Bob", "city": "Lima", "age": null, "tags": ["a", "b"]}
	]`)

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}

	want := []string{"name", "age", "active", "city", "tags"}
	if strings.Join(ds.Properties, ",") != strings.Join(want, ",") {
		t.Errorf("expected properties %v, got %v", want, ds.Properties)
	}

	ann, bob := ds.Records[0], ds.Records[1]
	if v := ann.Value("age"); v != 31.0 {
		t.Errorf("expected age 31, got %v (%T)", v, v)
	}
	if v := ann.Value("active"); v != true {
		t.Errorf("expected active true, got %v", v)
	}
	if bob.Has("age") {
		t.Error("expected null age to be missing")
	}
	if v := bob.Text("tags"); v != `["a", "b"]` {
		t.Errorf("expected raw nested json, got %q", v)
	}
}

func TestLoad_JSONPath(t *testing.T) {
	path := writeFile(t, "wrapped.json", `{"data": {"items": [{"id": 1}, {"id": 2}]}}`)

	ds, err := Load(path, WithPath("data.items"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Records) != 2 || ds.Properties[0] != "id" {
		t.Errorf("expected 2 records with id, got %d %v", len(ds.Records), ds.Properties)
	}

	if _, err := Load(path, WithPath("data.missing")); !errors.Is(err, ErrNotArray) {
		t.Errorf("expected ErrNotArray for missing path, got %v", err)
	}
}

func TestRead_JSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"invalid", `[{"a": }]`, ErrNotArray},
		{"object", `{"a": 1}`, ErrNotArray},
		{"scalars", `[1, 2]`, ErrNotArray},
		{"empty", `[]`, ErrNoRecords},
	}
	for _, tt := range tests {
		_, err := Read(strings.NewReader(tt.input), FormatJSON)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestRead_JSONLines(t *testing.T) {
	input := "{\"a\": 1}\n\n{\"b\": \"x\"}\n"
	ds, err := Read(strings.NewReader(input), FormatJSONLines)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(ds.Records))
	}
	if strings.Join(ds.Properties, ",") != "a,b" {
		t.Errorf("expected [a b], got %v", ds.Properties)
	}

	if _, err := Read(strings.NewReader("{\"a\": 1}\n[1]\n"), FormatJSONLines); !errors.Is(err, ErrNotArray) {
		t.Errorf("expected ErrNotArray, got %v", err)
	}
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "people.csv", "\xEF\xBB\xBF\nname,city,age\nAnn,Oslo,31\n,,\nBob,,40\n")

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if strings.Join(ds.Properties, ",") != "name,city,age" {
		t.Errorf("expected [name city age], got %v", ds.Properties)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected empty row to be skipped, got %d records", len(ds.Records))
	}
	if ds.Records[0].Text("city") != "Oslo" {
		t.Errorf("expected Oslo, got %q", ds.Records[0].Text("city"))
	}
	if ds.Records[1].Has("city") {
		t.Error("expected empty cell to be missing")
	}
}

func TestRead_TSV(t *testing.T) {
	ds, err := Read(strings.NewReader("a\tb\n1\t2\n"), FormatTSV)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Records[0].Text("b") != "2" {
		t.Errorf("expected b=2, got %q", ds.Records[0].Text("b"))
	}
}

func TestRead_CSVHeaderRepair(t *testing.T) {
	ds, err := Read(strings.NewReader("id,,id\n1,2,3\n"), FormatCSV)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := "id,column2,column3"
	if got := strings.Join(ds.Properties, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRead_CSVEmpty(t *testing.T) {
	if _, err := Read(strings.NewReader("\n\n"), FormatCSV); !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
	if _, err := Read(strings.NewReader("a,b\n"), FormatCSV); !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords for header only, got %v", err)
	}
}

func TestRead_AutoRejected(t *testing.T) {
	if _, err := Read(strings.NewReader("x"), FormatAuto); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
