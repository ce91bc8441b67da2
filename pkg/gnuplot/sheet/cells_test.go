package sheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, cells map[string]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for cell, value := range cells {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("Failed to set %s: %v", cell, err)
		}
	}

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return tmpFile
}

func TestReadRows(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"A1": "x", "B1": "cos(x)",
		"A2": 0, "B2": 1,
		"A3": 0.5, "B3": 0.877582562,
		"A5": 1, "B5": 0.540302306,
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	rows, err := ReadRows(f, "Sheet1")
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}

	// header and empty row 4 are skipped
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != 0 || rows[0][1] != 1 {
		t.Errorf("Expected [0 1], got %v", rows[0])
	}
	if rows[2][1] != 0.540302306 {
		t.Errorf("Expected 0.540302306, got %v", rows[2][1])
	}

	block, err := DetectBlock(f, "Sheet1")
	if err != nil {
		t.Fatalf("DetectBlock failed: %v", err)
	}
	if block != "A2:B5" {
		t.Errorf("Expected block A2:B5, got %q", block)
	}
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"A1": 1, "B1": 2, "C1": 3,
		"A2": 4, "B2": 5, "C2": 6,
	})

	a, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if shape := a.Shape(); shape[0] != 2 || shape[1] != 3 {
		t.Errorf("Expected shape [2 3], got %v", shape)
	}
	if a.At(1, 2) != 6 {
		t.Errorf("Expected 6, got %v", a.At(1, 2))
	}
}

func TestLoadOffsetBlock(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"B1": "x", "C1": "y",
		"B2": 1, "C2": 10,
		"A3": "label", "B3": 2, "C3": 20,
	})

	a, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if shape := a.Shape(); shape[0] != 2 || shape[1] != 2 {
		t.Fatalf("Expected shape [2 2], got %v", shape)
	}
	if a.At(0, 0) != 1 || a.At(1, 1) != 20 {
		t.Errorf("Expected [[1 10] [2 20]], got %v", a.Values())
	}
}

func TestLoadRaggedRows(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"A1": 1, "B1": 2,
		"A2": 3,
	})

	_, err := Load(path, "Sheet1")
	if !errors.Is(err, array.ErrShape) {
		t.Errorf("Expected shape error, got %v", err)
	}
}

func TestLoadMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{"A1": 1})
	if _, err := Load(path, "NoSuchSheet"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-100", -100, true},
		{" 1e3 ", 1000, true},
		{"hello", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		result, ok := parseValue(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("parseValue(%q) = %v, %v, expected %v, %v",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}
