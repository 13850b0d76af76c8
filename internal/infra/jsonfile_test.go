package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSON_Missing(t *testing.T) {
	var v map[string]any
	found, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"), &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("found = true for a missing file")
	}
}

func TestReadJSON_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var v map[string]any
	found, err := ReadJSON(path, &v)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !found {
		t.Error("found = false for an existing file")
	}
}

func TestWriteJSON_CreatesDirsAndKeepsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "doc.json")

	in := map[string]string{"reading": "Café <b>&</b> résumé"}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Café <b>&</b> résumé") {
		t.Errorf("document escaped text: %s", raw)
	}
	if !strings.Contains(string(raw), "\n  \"reading\"") {
		t.Errorf("document not indented: %s", raw)
	}

	var out map[string]string
	if _, err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if out["reading"] != in["reading"] {
		t.Errorf("round trip = %q", out["reading"])
	}
}
