package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"reflect"
	"testing"
	"time"

	"sublift/internal/processor"
)

func sampleOutcomes() []processor.Outcome {
	return []processor.Outcome{
		{
			Source: "/media/a.mkv",
			Status: processor.StatusExtracted,
			Tracks: []processor.TrackResult{
				{Language: "en", OutputPath: "/media/a.en.srt", Written: true},
				{Language: "fr", OutputPath: "/media/a.fr.srt", Written: true},
			},
			Elapsed: 2 * time.Second,
		},
		{Source: "/media/b.mkv", Status: processor.StatusSkippedNoMatch},
		{
			Source: "/media/c.mkv",
			Status: processor.StatusError,
			Errors: []string{"probe failed"},
		},
		{
			Source: "/media/d.mkv",
			Status: processor.StatusSkippedExists,
			Tracks: []processor.TrackResult{
				{Language: "en", OutputPath: "/media/d.en.srt", Existed: true},
			},
		},
		{
			Source: "/media/e.mkv",
			Status: processor.StatusExtracted,
			Tracks: []processor.TrackResult{
				{Language: "en", OutputPath: "/media/e.en.srt", Written: true},
				{Language: "en", OutputPath: "/media/e.en.2.srt", Err: errors.New("corrupt stream")},
			},
		},
	}
}

func TestAggregatorTotals(t *testing.T) {
	agg := NewAggregator()
	for _, outcome := range sampleOutcomes() {
		agg.Add(outcome)
	}

	summary := agg.Summary()
	if summary.Processed != 5 || summary.Extracted != 2 || summary.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Skipped() != 2 {
		t.Fatalf("skipped = %d, want 2", summary.Skipped())
	}
	if summary.TracksWritten != 3 {
		t.Fatalf("tracks written = %d, want 3", summary.TracksWritten)
	}
	if summary.PerLanguage["en"] != 2 || summary.PerLanguage["fr"] != 1 {
		t.Fatalf("per language = %v", summary.PerLanguage)
	}
}

func TestAggregatorOrderIndependent(t *testing.T) {
	outcomes := sampleOutcomes()

	sequential := NewAggregator()
	for _, outcome := range outcomes {
		sequential.Add(outcome)
	}

	shuffled := NewAggregator()
	perm := rand.New(rand.NewSource(42)).Perm(len(outcomes))
	for _, i := range perm {
		shuffled.Add(outcomes[i])
	}

	if !reflect.DeepEqual(sequential.Summary(), shuffled.Summary()) {
		t.Fatalf("totals depend on order:\n%+v\n%+v", sequential.Summary(), shuffled.Summary())
	}
}

func TestSummarySnapshotIsolated(t *testing.T) {
	agg := NewAggregator()
	agg.Add(sampleOutcomes()[0])

	snapshot := agg.Summary()
	snapshot.PerLanguage["xx"] = 99

	if _, ok := agg.Summary().PerLanguage["xx"]; ok {
		t.Fatal("mutating a snapshot leaked into the aggregator")
	}
}

func TestWriteJSON(t *testing.T) {
	agg := NewAggregator()
	for _, outcome := range sampleOutcomes() {
		agg.Add(outcome)
	}
	rep := Build("run-1", agg)

	path, err := WriteJSON(t.TempDir(), rep)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.Summary.Processed != 5 || len(decoded.Files) != 5 {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}
}

func TestWriteCSV(t *testing.T) {
	agg := NewAggregator()
	for _, outcome := range sampleOutcomes() {
		agg.Add(outcome)
	}
	rep := Build("run-1", agg)

	path, err := WriteCSV(t.TempDir(), rep)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header plus 5 rows, got %d", len(rows))
	}
	if rows[1][1] != "extracted" || rows[1][2] != "2" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
}
