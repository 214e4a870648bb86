package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sublift/internal/processor"
)

// Record is the serialized form of one per-file outcome.
type Record struct {
	Source  string        `json:"source"`
	Status  string        `json:"status"`
	Tracks  []TrackRecord `json:"tracks,omitempty"`
	Errors  []string      `json:"errors,omitempty"`
	Elapsed float64       `json:"elapsed_seconds"`
}

// TrackRecord is the serialized form of one per-track result.
type TrackRecord struct {
	Language string `json:"language"`
	Ordinal  int    `json:"ordinal,omitempty"`
	Output   string `json:"output"`
	Written  bool   `json:"written"`
	Existed  bool   `json:"existed"`
	Error    string `json:"error,omitempty"`
}

// Report is the full serialized run report.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     Summary   `json:"summary"`
	Files       []Record  `json:"files"`
}

// Build assembles a Report from the aggregator's state.
func Build(runID string, agg *Aggregator) Report {
	outcomes := agg.Outcomes()
	files := make([]Record, 0, len(outcomes))
	for _, outcome := range outcomes {
		files = append(files, toRecord(outcome))
	}
	return Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Summary:     agg.Summary(),
		Files:       files,
	}
}

func toRecord(outcome processor.Outcome) Record {
	record := Record{
		Source:  outcome.Source,
		Status:  string(outcome.Status),
		Errors:  outcome.Errors,
		Elapsed: outcome.Elapsed.Seconds(),
	}
	for _, track := range outcome.Tracks {
		tr := TrackRecord{
			Language: string(track.Language),
			Ordinal:  track.Ordinal,
			Output:   track.OutputPath,
			Written:  track.Written,
			Existed:  track.Existed,
		}
		if track.Err != nil {
			tr.Error = track.Err.Error()
		}
		record.Tracks = append(record.Tracks, tr)
	}
	return record
}

// WriteJSON writes the report as indented JSON under dir and returns the
// file path. Filenames carry the run timestamp so successive runs never
// clobber each other.
func WriteJSON(dir string, rep Report) (string, error) {
	path := filepath.Join(dir, reportName(rep, "json"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// WriteCSV writes one row per file outcome under dir and returns the file
// path.
func WriteCSV(dir string, rep Report) (string, error) {
	path := filepath.Join(dir, reportName(rep, "csv"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"source", "status", "tracks_written", "outputs", "errors", "elapsed_seconds"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, record := range rep.Files {
		var outputs []string
		written := 0
		for _, track := range record.Tracks {
			if track.Written {
				written++
				outputs = append(outputs, track.Output)
			}
		}
		row := []string{
			record.Source,
			record.Status,
			strconv.Itoa(written),
			strings.Join(outputs, ";"),
			strings.Join(record.Errors, ";"),
			strconv.FormatFloat(record.Elapsed, 'f', 3, 64),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}
	return path, nil
}

func reportName(rep Report, ext string) string {
	return fmt.Sprintf("sublift-report-%s.%s", rep.GeneratedAt.Format("20060102-150405"), ext)
}
