// Package testutil provides shared test infrastructure for the clinic simulator.
// It holds the golden queueing dataset types and assertion helpers used across
// sim/ and sim/clinic/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one M/M/c configuration with its textbook steady-state figures.
type GoldenTestCase struct {
	Name        string        `json:"name"`
	ArrivalRate float64       `json:"arrival_rate"`
	ServiceRate float64       `json:"service_rate"`
	Servers     int           `json:"servers"`
	Metrics     GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected figures of a golden test case.
type GoldenMetrics struct {
	OfferedLoad float64 `json:"offered_load"`
	Utilization float64 `json:"utilization"`
	ProbWait    float64 `json:"prob_wait"`
	MeanWait    float64 `json:"mean_wait"`
	MeanQueue   float64 `json:"mean_queue"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
