// =============================================================================
// Bike Sharing Dashboard - CSV Parser Module
// =============================================================================
//
// This module reads a delimited file into memory. It knows nothing about
// rentals: it returns the headers and one header -> value map per data row,
// and leaves typing to the dataset package.
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon, any single rune)
//   - Multi-line headers, merged into one header per column
//   - Empty rows are skipped, short rows are padded with ""
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// SETTINGS AND DATA STRUCTURES
// =============================================================================

// Settings controls how the file is read.
type Settings struct {
	// Delimiter separates fields. Default: ","
	Delimiter string

	// HeaderRows is the number of header rows. Default: 1
	HeaderRows int
}

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the column headers, merged for multi-line headers.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// LineNumbers holds the 1-indexed CSV record number of each entry in
	// Rows, header rows included. Used for error reporting.
	LineNumbers []int

	// SourceFile is the path the data was read from, if any.
	SourceFile string
}

// RowCount returns the number of data rows.
func (d *CSVData) RowCount() int {
	return len(d.Rows)
}

// HasColumn reports whether a header with this exact name exists.
func (d *CSVData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The parsing settings.
//
// RETURNS:
//   - The parsed data.
//   - An error if the file cannot be opened or is not valid CSV.
func Parse(filePath string, settings Settings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses CSV content from any reader.
func ParseReader(r io.Reader, settings Settings) (*CSVData, error) {
	if settings.HeaderRows <= 0 {
		settings.HeaderRows = 1
	}

	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers, err := extractHeaders(allRows, settings.HeaderRows)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	rows, lines := extractDataRows(allRows, headers, settings.HeaderRows)

	return &CSVData{
		Headers:     headers,
		Rows:        rows,
		LineNumbers: lines,
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Tolerate ragged rows; missing cells become "".
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// extractHeaders extracts and merges the header rows.
//
// MULTI-LINE HEADER HANDLING:
//   Non-empty values of a column are joined with a space.
//
//   Row 1: "Rental", ""
//   Row 2: "Count",  "Season"
//   Result: "Rental Count", "Season"
func extractHeaders(allRows [][]string, headerRows int) ([]string, error) {
	if len(allRows) < headerRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}

	if headerRows == 1 {
		return cleanHeaders(allRows[0]), nil
	}

	maxCols := 0
	for i := 0; i < headerRows; i++ {
		if len(allRows[i]) > maxCols {
			maxCols = len(allRows[i])
		}
	}

	headers := make([]string, maxCols)
	for col := 0; col < maxCols; col++ {
		var parts []string
		for row := 0; row < headerRows; row++ {
			if col < len(allRows[row]) {
				if value := strings.TrimSpace(allRows[row][col]); value != "" {
					parts = append(parts, value)
				}
			}
		}
		headers[col] = strings.Join(parts, " ")
	}

	return cleanHeaders(headers), nil
}

// cleanHeaders trims headers, strips a UTF-8 BOM from the first one and
// names empty headers after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// extractDataRows converts every non-empty row after the headers to a map.
func extractDataRows(allRows [][]string, headers []string, headerRows int) ([]map[string]string, []int) {
	if headerRows >= len(allRows) {
		return []map[string]string{}, []int{}
	}

	dataRows := make([]map[string]string, 0, len(allRows)-headerRows)
	lines := make([]int, 0, len(allRows)-headerRows)

	for rowIndex := headerRows; rowIndex < len(allRows); rowIndex++ {
		row := allRows[rowIndex]
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		dataRows = append(dataRows, rowMap)
		lines = append(lines, rowIndex+1)
	}

	return dataRows, lines
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
