package indexing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/corpindex/company-search/model"
)

// RowError describes a single rejected source row. The row is skipped; the
// rest of the file is still ingested.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// schemaColumns are the source columns projected into a Company. Anything
// else in the file (arrival timestamps, raw source line, employee counts) is
// dropped at ingestion.
var schemaColumns = map[string]struct{}{
	model.FieldID:          {},
	model.FieldName:        {},
	model.FieldCountry:     {},
	model.FieldIndustry:    {},
	model.FieldLocality:    {},
	model.FieldLinkedinURL: {},
	model.FieldDomain:      {},
}

// ReadCompaniesCSV reads a headered CSV file into companies, projecting only
// the schema columns. A malformed row yields a RowError and the scan
// continues; a missing id or name column in the header is fatal.
func ReadCompaniesCSV(fs afero.Fs, path string) ([]model.Company, []RowError, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columnIndex := make(map[string]int, len(schemaColumns))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := schemaColumns[name]; ok {
			columnIndex[name] = i
		}
	}
	if _, ok := columnIndex[model.FieldID]; !ok {
		return nil, nil, fmt.Errorf("%s has no %q column", path, model.FieldID)
	}
	if _, ok := columnIndex[model.FieldName]; !ok {
		return nil, nil, fmt.Errorf("%s has no %q column", path, model.FieldName)
	}

	var companies []model.Company
	var rowErrors []RowError

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Message: err.Error()})
			continue
		}

		company, rowErr := projectRow(record, columnIndex, line)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		companies = append(companies, company)
	}

	return companies, rowErrors, nil
}

func projectRow(record []string, columnIndex map[string]int, line int) (model.Company, *RowError) {
	cell := func(column string) string {
		i, ok := columnIndex[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rawID := cell(model.FieldID)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return model.Company{}, &RowError{Line: line,
			Message: fmt.Sprintf("invalid company id %q", rawID)}
	}

	name := cell(model.FieldName)
	if name == "" {
		return model.Company{}, &RowError{Line: line, Message: "empty company name"}
	}

	return model.Company{
		ID:          id,
		Name:        name,
		Country:     cell(model.FieldCountry),
		Industry:    cell(model.FieldIndustry),
		Locality:    cell(model.FieldLocality),
		LinkedinURL: cell(model.FieldLinkedinURL),
		Domain:      cell(model.FieldDomain),
	}, nil
}
