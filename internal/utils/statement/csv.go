package statement

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	dateHeaders        = []string{"data", "date", "dt"}
	descriptionHeaders = []string{"descri", "hist", "memo", "lanc", "estabelecimento", "name", "nome"}
	amountHeaders      = []string{"valor", "amount", "value", "quantia"}
)

type csvColumns struct {
	date, description, amount int
}

func (c csvColumns) width() int {
	return max(c.date, c.description, c.amount) + 1
}

func headerMatches(cell string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(cell, k) {
			return true
		}
	}
	return false
}

// locateColumns finds the date, description and amount columns by header name,
// using positions 0, 1 and 2 for any column that could not be found.
func locateColumns(header []string) csvColumns {
	cols := csvColumns{date: -1, description: -1, amount: -1}
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cols.date < 0 && headerMatches(cell, dateHeaders):
			cols.date = i
		case cols.description < 0 && headerMatches(cell, descriptionHeaders):
			cols.description = i
		case cols.amount < 0 && headerMatches(cell, amountHeaders):
			cols.amount = i
		}
	}
	if cols.date < 0 {
		cols.date = 0
	}
	if cols.description < 0 {
		cols.description = 1
	}
	if cols.amount < 0 {
		cols.amount = 2
	}
	return cols
}

func separatorFor(text string) rune {
	header := text
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	if strings.Contains(header, ";") {
		return ';'
	}
	return ','
}

func (p *Parser) parseCSV(text string) (*Result, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = separatorFor(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, ErrNoRows
	}
	cols := locateColumns(header)
	now := p.now()

	res := &Result{Format: FormatCSV, Drafts: []Draft{}, Skipped: []SkippedLine{}}
	rows := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, err
			}
			rows++
			res.Skipped = append(res.Skipped, SkippedLine{Line: perr.Line, Reason: "malformed line"})
			continue
		}
		line, _ := r.FieldPos(0)
		if isBlank(record) {
			continue
		}
		rows++
		if len(record) < cols.width() {
			res.Skipped = append(res.Skipped, SkippedLine{Line: line, Reason: "too few columns"})
			continue
		}

		amount, err := ParseAmount(record[cols.amount])
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: line, Reason: err.Error()})
			continue
		}
		date, ok := ParseDate(record[cols.date], now)
		res.Drafts = append(res.Drafts, p.newDraft(line, date, ok, record[cols.description], amount))
	}

	if rows == 0 {
		return nil, ErrNoRows
	}
	return res, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
