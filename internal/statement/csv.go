// Package statement parses exported bank statements (CSV) into entry
// records, handling the delimiter and number formats Brazilian banks use.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/models"
)

// Record is one parsed statement line.
type Record struct {
	Type        models.EntryType
	Amount      float64
	Category    string
	Description string
	Date        time.Time
}

// expected column order: data, descricao, valor, categoria (categoria optional).
const minColumns = 3

// ParseCSV reads a bank-statement export. The delimiter is sniffed from
// the first line (';' exports are common from Brazilian banks, ','
// otherwise). A header line is skipped when detected. Negative values
// or a "D" debit marker mean expense; positive values income.
func ParseCSV(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if len(row) < minColumns {
			continue
		}
		if i == 0 && isHeader(row) {
			continue
		}

		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		amount, err := parseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		entryType := models.EntryTypeIncome
		if amount < 0 {
			entryType = models.EntryTypeExpense
			amount = -amount
		}

		category := "OUTROS"
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			category = models.NormalizeCategory(row[3])
		}

		records = append(records, Record{
			Type:        entryType,
			Amount:      amount,
			Category:    category,
			Description: strings.TrimSpace(row[1]),
			Date:        date,
		})
	}
	return records, nil
}

func sniffDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';'
	}
	return ','
}

func isHeader(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "data" || first == "date"
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount handles "R$ 1.234,56", "-45,90", "45.90" and a trailing
// D/C debit-credit marker.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)

	negative := false
	switch {
	case strings.HasSuffix(s, " D"):
		negative = true
		s = strings.TrimSpace(strings.TrimSuffix(s, " D"))
	case strings.HasSuffix(s, " C"):
		s = strings.TrimSpace(strings.TrimSuffix(s, " C"))
	}

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	// Brazilian format uses '.' for thousands and ',' for decimals.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", s)
	}
	if negative {
		value = -value
	}
	return value, nil
}
