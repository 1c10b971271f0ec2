package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"ubersuggest-go/pkg/api"
	"ubersuggest-go/pkg/logger"
)

// File name prefix shared by every export
const filePrefix = "ubersuggest_"

var (
	ResultsHeader           = []string{"Keyword", "Search Volume", "CPC", "Competition"}
	MonthlyStatisticsHeader = []string{"keyword", "year", "month", "count"}
)

// DefaultEncoding is the charset used when none is configured
const DefaultEncoding = "utf-8"

var supportedEncodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"utf-8-bom":    unicode.UTF8BOM,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// ParseEncoding resolves an output charset name. Empty selects UTF-8.
func ParseEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEncoding
	}
	enc, ok := supportedEncodings[key]
	if !ok {
		return nil, fmt.Errorf("unsupported csv encoding: %q", name)
	}
	return enc, nil
}

// ResultsFileName is the CSV name for a keyword's results
func ResultsFileName(keyword string) string {
	return filePrefix + keyword + ".csv"
}

// MonthlyStatisticsFileName is the CSV name for a keyword's monthly statistics
func MonthlyStatisticsFileName(keyword string) string {
	return filePrefix + keyword + "_monthly_statistics.csv"
}

// CSVExporter writes lookup results as CSV files into a directory
type CSVExporter struct {
	dir      string
	encoding encoding.Encoding
	log      *logger.Logger
}

// NewCSVExporter creates an exporter. An empty dir means the current working
// directory at write time.
func NewCSVExporter(dir, encodingName string) (*CSVExporter, error) {
	enc, err := ParseEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &CSVExporter{
		dir:      dir,
		encoding: enc,
		log:      logger.GetLogger().WithField("component", "csv_exporter"),
	}, nil
}

// WriteResults writes one row per record and returns the file path
func (e *CSVExporter) WriteResults(keyword string, records []api.KeywordRecord) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Keyword,
			strconv.Itoa(r.Volume),
			formatFloat(r.CPC),
			formatFloat(r.Competition),
		})
	}
	return e.writeFile(ResultsFileName(keyword), ResultsHeader, rows)
}

// WriteMonthlyStatistics writes one row per keyword and month and returns the
// file path
func (e *CSVExporter) WriteMonthlyStatistics(keyword string, stats []api.KeywordStatistics) (string, error) {
	var rows [][]string
	for _, s := range stats {
		for _, m := range s.Months {
			rows = append(rows, []string{
				s.Keyword,
				strconv.Itoa(m.Year),
				strconv.Itoa(m.Month),
				strconv.Itoa(m.Count),
			})
		}
	}
	return e.writeFile(MonthlyStatisticsFileName(keyword), MonthlyStatisticsHeader, rows)
}

func (e *CSVExporter) writeFile(name string, header []string, rows [][]string) (path string, err error) {
	dir := e.dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}
	path = filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close csv file: %w", cerr)
		}
	}()

	encoder := transform.NewWriter(file, encoding.ReplaceUnsupported(e.encoding.NewEncoder()))
	writer := csv.NewWriter(encoder)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write csv rows: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to flush csv file: %w", err)
	}

	e.log.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Info("CSV file written")
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
