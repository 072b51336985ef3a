package statement

import (
	"regexp"
	"strings"
)

var (
	ofxTransaction = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	ofxAmount      = regexp.MustCompile(`(?i)<TRNAMT>\s*([^<\r\n]+)`)
	ofxName        = regexp.MustCompile(`(?i)<NAME>\s*([^<\r\n]+)`)
	ofxMemo        = regexp.MustCompile(`(?i)<MEMO>\s*([^<\r\n]+)`)
	ofxPosted      = regexp.MustCompile(`(?i)<DTPOSTED>\s*([^<\r\n]+)`)
	ofxFitID       = regexp.MustCompile(`(?i)<FITID>\s*([^<\r\n]+)`)
)

func ofxField(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func (p *Parser) parseOFX(text string) (*Result, error) {
	matches := ofxTransaction.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, ErrNoRows
	}
	now := p.now()

	res := &Result{Format: FormatOFX, Drafts: []Draft{}, Skipped: []SkippedLine{}}
	for _, m := range matches {
		line := strings.Count(text[:m[0]], "\n") + 1
		block := text[m[2]:m[3]]

		rawAmount := ofxField(ofxAmount, block)
		if rawAmount == "" {
			res.Skipped = append(res.Skipped, SkippedLine{Line: line, Reason: "missing TRNAMT"})
			continue
		}
		amount, err := ParseAmount(rawAmount)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: line, Reason: err.Error()})
			continue
		}

		description := ofxField(ofxName, block)
		if description == "" {
			description = ofxField(ofxMemo, block)
		}
		date, ok := parseOFXDate(ofxField(ofxPosted, block), now)

		d := p.newDraft(line, date, ok, description, amount)
		d.ExternalID = ofxField(ofxFitID, block)
		res.Drafts = append(res.Drafts, d)
	}
	return res, nil
}
