// Package statement turns bank statement exports (CSV or OFX) into draft
// transactions ready for review before they are stored.
package statement

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Format is a supported statement file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatOFX Format = "ofx"
)

var (
	ErrEmptyFile         = fmt.Errorf("%w: statement file is empty", apperrors.ErrValidation)
	ErrNoRows            = fmt.Errorf("%w: statement has no transaction rows", apperrors.ErrValidation)
	ErrNoDrafts          = fmt.Errorf("%w: no transactions could be read from the statement", apperrors.ErrValidation)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported statement format", apperrors.ErrValidation)
)

// Draft is a parsed, categorized transaction that has not been stored yet.
type Draft struct {
	Line        int                    `json:"line"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	ExternalID  string                 `json:"externalId,omitempty"`
	DateGuessed bool                   `json:"dateGuessed,omitempty"`
}

// SkippedLine reports an input line or OFX block that produced no draft.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result is the outcome of parsing one file.
type Result struct {
	Format  Format        `json:"format"`
	Drafts  []Draft       `json:"drafts"`
	Skipped []SkippedLine `json:"skipped"`
}

// Parser parses statements with a categorizer and a clock used for undated rows.
type Parser struct {
	categorizer *Categorizer
	now         func() time.Time
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithCategorizer replaces the built-in keyword table.
func WithCategorizer(c *Categorizer) ParserOption {
	return func(p *Parser) {
		if c != nil {
			p.categorizer = c
		}
	}
}

// WithClock sets the time source used when a row's date cannot be read.
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a Parser with the default categorizer and time.Now.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{categorizer: DefaultCategorizer(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Categorizer returns the categorizer in use.
func (p *Parser) Categorizer() *Categorizer {
	return p.categorizer
}

// DetectFormat picks a format from the file name, falling back to sniffing the content.
func DetectFormat(filename string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ofx", ".qfx":
		return FormatOFX
	case ".csv":
		return FormatCSV
	}
	return sniff(string(content))
}

func sniff(content string) Format {
	upper := strings.ToUpper(content)
	for _, marker := range []string{"OFXHEADER", "<OFX>", "<STMTTRN>"} {
		if strings.Contains(upper, marker) {
			return FormatOFX
		}
	}
	return FormatCSV
}

// Parse reads content in the given format; an empty format is sniffed.
func (p *Parser) Parse(content []byte, format Format) (*Result, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFile
	}
	if format == "" {
		format = sniff(text)
	}

	var (
		res *Result
		err error
	)
	switch format {
	case FormatCSV:
		res, err = p.parseCSV(text)
	case FormatOFX:
		res, err = p.parseOFX(text)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(res.Drafts) == 0 {
		return nil, ErrNoDrafts
	}
	return res, nil
}

func (p *Parser) newDraft(line int, date time.Time, dateOK bool, description string, signed decimal.Decimal) Draft {
	txType := domain.Income
	if signed.IsNegative() {
		txType = domain.Expense
	}
	description = strings.TrimSpace(description)
	return Draft{
		Line:        line,
		Date:        date,
		Description: description,
		Amount:      signed.Abs(),
		Type:        txType,
		Category:    p.categorizer.Categorize(description),
		DateGuessed: !dateOK,
	}
}
