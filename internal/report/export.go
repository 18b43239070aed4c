// internal/report/export.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/betsim/internal/sim"
)

// Format is the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrNoResults = errors.New("no batch results to export")

// ParseFormat accepts "csv" or "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ExportOptions configures where and how a run is written.
type ExportOptions struct {
	Format    Format
	OutputDir string
	Seed      uint64
	// Now stamps the file name and payload; zero means time.Now.
	Now time.Time
}

// Exporter writes run results to disk.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates an Exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger.Named("export")}
}

// Export writes results and returns the file path.
func (e *Exporter) Export(results []sim.BatchResult, opts ExportOptions) (string, error) {
	if len(results) == 0 {
		return "", ErrNoResults
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := fmt.Sprintf("betsim_%s_%d.%s", now.Format("20060102_150405"), opts.Seed, opts.Format)
	outputPath := filepath.Join(opts.OutputDir, name)

	var err error
	switch opts.Format {
	case FormatCSV:
		err = exportCSV(results, outputPath)
	case FormatJSON:
		err = exportJSON(results, opts.Seed, now, outputPath)
	default:
		err = fmt.Errorf("unsupported export format: %q", opts.Format)
	}
	if err != nil {
		return "", err
	}

	e.logger.Info("Results exported",
		zap.String("file", outputPath),
		zap.Int("batches", len(results)),
		zap.String("format", string(opts.Format)))
	return outputPath, nil
}

// CSVHeaders lists the CSV columns.
func CSVHeaders() []string {
	return []string{"batch", "trials", "wins", "losses"}
}

func exportCSV(results []sim.BatchResult, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Trials),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write batch %d: %w", r.Index, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// Document is the JSON export payload.
type Document struct {
	ExportTime time.Time         `json:"export_time"`
	Seed       uint64            `json:"seed"`
	Summary    Summary           `json:"summary"`
	Batches    []sim.BatchResult `json:"batches"`
}

func exportJSON(results []sim.BatchResult, seed uint64, now time.Time, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	doc := Document{
		ExportTime: now,
		Seed:       seed,
		Summary:    Summarize(results),
		Batches:    results,
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return file.Close()
}
