package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/okian/auditplan/internal/domain/model"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

var errEmptyFile = errors.New("file is empty")

// FileSource reads each collection from its own file. The format is chosen
// from the file extension.
type FileSource struct {
	engagementsPath string
	staffPath       string
}

// NewFileSource returns a source reading the two given files.
func NewFileSource(engagementsPath, staffPath string) *FileSource {
	return &FileSource{engagementsPath: engagementsPath, staffPath: staffPath}
}

// Engagements reads the historical engagements file.
func (s *FileSource) Engagements(ctx context.Context) ([]model.EngagementRecord, error) {
	path := s.engagementsPath
	if isYAML(path) {
		var rows []engagementRow
		if err := readYAML(path, &rows); err != nil {
			return nil, err
		}
		out := make([]model.EngagementRecord, 0, len(rows))
		for i, r := range rows {
			rec, err := r.record()
			if err != nil {
				return nil, fmt.Errorf("%s record %d: %w: %w", path, i+1, model.ErrDataLoad, err)
			}
			out = append(out, rec)
		}
		return out, nil
	}

	t, err := readTable(ctx, path, engagementColumns)
	if err != nil {
		return nil, err
	}
	return t.engagements(path)
}

// Staff reads the roster file.
func (s *FileSource) Staff(ctx context.Context) ([]model.StaffRecord, error) {
	path := s.staffPath
	if isYAML(path) {
		var rows []staffRow
		if err := readYAML(path, &rows); err != nil {
			return nil, err
		}
		out := make([]model.StaffRecord, 0, len(rows))
		for i, r := range rows {
			rec, err := r.record()
			if err != nil {
				return nil, fmt.Errorf("%s record %d: %w: %w", path, i+1, model.ErrDataLoad, err)
			}
			out = append(out, rec)
		}
		return out, nil
	}

	t, err := readTable(ctx, path, staffColumns)
	if err != nil {
		return nil, err
	}
	return t.staff(path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		return true
	}
	return false
}

func readYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrDataLoad, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w: %w", path, model.ErrDataLoad, err)
	}
	return nil
}

// readTable loads a header-first tabular file and checks the required columns.
func readTable(ctx context.Context, path string, required []string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCSV:
		rows, err = readCSV(path)
	case ExtXLSX:
		rows, err = readXLSX(path)
	default:
		err = fmt.Errorf("unsupported file type %q", ext)
	}
	if err == nil && len(rows) == 0 {
		err = errEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, model.ErrDataLoad, err)
	}

	t, err := newTable(rows[0], rows[1:], required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, model.ErrDataLoad, err)
	}
	return t, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	// Excel-exported CSVs often start with a byte order mark.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// readXLSX returns the rows of the first sheet.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptyFile
	}
	return f.GetRows(sheets[0])
}
