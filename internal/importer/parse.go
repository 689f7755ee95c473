package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column names recognised in the header row.
const (
	colDate        = "date"
	colAccount     = "account"
	colName        = "name"
	colType        = "type"
	colSplit       = "split"
	colAmount      = "amount"
	colBalance     = "balance"
	colDescription = "description"
	colReference   = "reference"
)

var requiredColumns = []string{colDate, colAccount, colAmount}

// headerAliases maps normalised header text to a column name.
var headerAliases = map[string]string{
	"date":             colDate,
	"transaction date": colDate,
	"account":          colAccount,
	"account name":     colAccount,
	"account_name":     colAccount,
	"name":             colName,
	"payee":            colName,
	"type":             colType,
	"transaction type": colType,
	"split":            colSplit,
	"split account":    colSplit,
	"split_account":    colSplit,
	"amount":           colAmount,
	"balance":          colBalance,
	"description":      colDescription,
	"memo":             colDescription,
	"memo/description": colDescription,
	"reference":        colReference,
	"ref":              colReference,
	"num":              colReference,
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// Parsed is the outcome of reading an export. Rows carry only the file
// content; ids, company and audit fields are set by the caller.
type Parsed struct {
	Rows    []domain.ImportRow
	Skipped int
	Errors  []string
}

// Parse reads an export in the given format. Per-row problems are collected
// in Parsed.Errors; only file-level problems return an error.
func Parse(r io.Reader, format Format, maxRows int) (*Parsed, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = readXLSX(r)
	case FormatCSV:
		records, err = readCSV(r, maxRows)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return parseRecords(records, maxRows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader, maxRows int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, rec)
		// Header plus one extra row is enough to know the limit was exceeded.
		if maxRows > 0 && len(records) > maxRows+1 {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, maxRows)
		}
	}
}

func parseRecords(records [][]string, maxRows int) (*Parsed, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isBlank(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: file has no header row", ErrMissingColumn)
	}

	columns, err := mapHeader(records[headerIdx])
	if err != nil {
		return nil, err
	}
	data := records[headerIdx+1:]
	if maxRows > 0 && len(data) > maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(data), maxRows)
	}

	parsed := &Parsed{Rows: make([]domain.ImportRow, 0, len(data)), Errors: []string{}}
	for i, rec := range data {
		rowNumber := headerIdx + i + 2 // 1-based, counting the header
		if isBlank(rec) {
			parsed.Skipped++
			continue
		}
		row, err := parseRow(rec, columns)
		if err != nil {
			parsed.Errors = append(parsed.Errors, fmt.Sprintf("row %d: %v", rowNumber, err))
			continue
		}
		row.RowNumber = rowNumber
		parsed.Rows = append(parsed.Rows, row)
	}
	return parsed, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if col, ok := headerAliases[key]; ok {
			if _, dup := columns[col]; !dup {
				columns[col] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return columns, nil
}

func parseRow(rec []string, columns map[string]int) (domain.ImportRow, error) {
	cell := func(col string) string {
		i, ok := columns[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var row domain.ImportRow

	date, err := parseDate(cell(colDate))
	if err != nil {
		return row, err
	}
	amount, err := parseAmount(cell(colAmount))
	if err != nil {
		return row, fmt.Errorf("amount: %w", err)
	}

	row.Date = date
	row.Amount = amount
	row.AccountName = cell(colAccount)
	row.SplitAccount = cell(colSplit)
	row.Name = cell(colName)
	row.Type = cell(colType)

	if raw := cell(colBalance); raw != "" {
		balance, err := parseAmount(raw)
		if err != nil {
			return row, fmt.Errorf("balance: %w", err)
		}
		row.Balance = &balance
	}
	if d := cell(colDescription); d != "" {
		row.Description = &d
	}
	if ref := cell(colReference); ref != "" {
		row.Reference = &ref
	}
	return row, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// parseAmount accepts thousands separators, a leading currency sign and
// accounting-style parentheses for negatives.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errors.New("value is empty")
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", raw)
	}
	if !domain.FitsAmountScale(d) {
		return decimal.Zero, fmt.Errorf("%q has more than %d decimal places", raw, domain.AmountScale)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
