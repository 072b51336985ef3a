// Package whatsapp classifies free-text chat messages into finance commands.
package whatsapp

import (
	"regexp"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/shopspring/decimal"
)

// Kind is the classification of a chat message.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
	KindBalance Kind = "balance"
	KindHelp    Kind = "help"
	KindUnknown Kind = "unknown"
)

// Command is a parsed chat message. Amount and Description are set for expense and income.
type Command struct {
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Raw         string          `json:"raw"`
}

const amountExpr = `(?:r\$\s*)?([0-9][0-9.,]*)(?:\s*(?:reais|real|brl)\b)?`

var (
	expensePattern = regexp.MustCompile(`(?i)^(?:gastei|gasto|paguei|comprei|despesa|spent|paid)\s+` + amountExpr + `(?:\s+(?:no|na|em|com|de|do|da|pra|para|on|at|for)\b)?\s*(.*)$`)
	incomePattern  = regexp.MustCompile(`(?i)^(?:recebi|ganhei|receita|entrada|received|earned)\s+` + amountExpr + `(?:\s+(?:de|do|da|no|na|em|from|for)\b)?\s*(.*)$`)
	balancePattern = regexp.MustCompile(`(?i)^(?:saldo|balance|resumo|extrato)\b`)
	helpPattern    = regexp.MustCompile(`(?i)^(?:ajuda|help|menu|comandos|\?)$`)
)

// Parse classifies message. Patterns are tried in order; anything else is KindUnknown,
// including expense or income messages whose amount is ambiguous or not positive.
func Parse(message string) Command {
	text := strings.Join(strings.Fields(message), " ")
	cmd := Command{Kind: KindUnknown, Raw: message}

	for _, p := range []struct {
		kind Kind
		re   *regexp.Regexp
	}{
		{KindExpense, expensePattern},
		{KindIncome, incomePattern},
	} {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := statement.ParseAmount(m[1])
		if err != nil || !amount.IsPositive() {
			return cmd
		}
		cmd.Kind = p.kind
		cmd.Amount = amount
		cmd.Description = strings.TrimSpace(m[2])
		return cmd
	}

	switch {
	case balancePattern.MatchString(text):
		cmd.Kind = KindBalance
	case helpPattern.MatchString(text):
		cmd.Kind = KindHelp
	}
	return cmd
}

// HelpText lists the commands understood by Parse.
const HelpText = "Comandos disponíveis:\n" +
	"• gastei 25,50 no uber\n" +
	"• recebi 1500 salario\n" +
	"• saldo\n" +
	"• ajuda"
