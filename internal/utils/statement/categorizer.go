package statement

import (
	"strings"
	"unicode"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// Rule maps a set of description keywords to a category name.
type Rule struct {
	Category string   `mapstructure:"category" yaml:"category"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
}

// Categorizer assigns categories by scanning rules in order; the first keyword
// found in the description wins. A leading or trailing space in a keyword
// anchors it to a word boundary, so "ted " matches "TED JOAO" but not "UNRELATED".
type Categorizer struct {
	rules    []Rule
	fallback string
}

// NewCategorizer builds a categorizer from rules. An empty fallback means domain.FallbackCategory.
func NewCategorizer(rules []Rule, fallback string) *Categorizer {
	if fallback == "" {
		fallback = domain.FallbackCategory
	}
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = normalizeKeyword(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		if r.Category == "" || len(kws) == 0 {
			continue
		}
		normalized = append(normalized, Rule{Category: r.Category, Keywords: kws})
	}
	return &Categorizer{rules: normalized, fallback: fallback}
}

// DefaultCategorizer uses the built-in keyword table.
func DefaultCategorizer() *Categorizer {
	return NewCategorizer(DefaultRules(), domain.FallbackCategory)
}

// Categorize returns the category for a description.
func (c *Categorizer) Categorize(description string) string {
	lower := " " + foldText(description) + " "
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return c.fallback
}

// foldText lowercases s, turns punctuation into spaces and collapses runs of spaces.
func foldText(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// normalizeKeyword folds kw like a description but keeps one boundary space on
// each side where kw had one. A blank keyword yields "".
func normalizeKeyword(kw string) string {
	core := foldText(kw)
	if core == "" {
		return ""
	}
	trimmed := strings.TrimLeftFunc(kw, unicode.IsSpace)
	if len(trimmed) != len(kw) {
		core = " " + core
	}
	if strings.TrimRightFunc(kw, unicode.IsSpace) != kw {
		core += " "
	}
	return core
}

// Rules returns a copy of the active rule table.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// DefaultRules is the built-in keyword table. Order matters: delivery apps are
// listed before ride hailing so "uber eats" lands in Food.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Salary", Keywords: []string{"salario", "salário", "salary", "payroll", "folha de pagamento", "pro labore", "pró-labore"}},
		{Category: "Investments", Keywords: []string{"tesouro", " cdb ", "dividendo", "dividend", "rendimento", "corretora", "aplicacao", "aplicação", " invest"}},
		{Category: "Food", Keywords: []string{"ifood", "uber eats", "ubereats", "rappi", "restaurante", "restaurant", "padaria", "lanchonete", "supermercado", "grocery", "pizza", "burger", " cafe", " café", "acougue", "açougue"}},
		{Category: "Transport", Keywords: []string{" uber ", "99app", " 99 pop", "cabify", " taxi", " táxi", " posto ", "combustivel", "combustível", "gasolina", "estacionamento", "parking", "pedagio", "pedágio", " metro ", " metrô ", " onibus", " ônibus", "bilhete unico"}},
		{Category: "Housing", Keywords: []string{"aluguel", " rent ", "condominio", "condomínio", " iptu ", "mortgage", "financiamento imobiliario"}},
		{Category: "Utilities", Keywords: []string{" energia", " enel ", " cemig", " copel", "sabesp", " agua ", " água ", "internet", " vivo ", " claro ", " tim ", " oi fibra", " net virtua", "telefone"}},
		{Category: "Health", Keywords: []string{"farmacia", "farmácia", "drogaria", "droga raia", "drogasil", "hospital", " clinica", " clínica", " medico", " médico", "laboratorio", "laboratório", "unimed", "plano de saude", "plano de saúde", "pharmacy"}},
		{Category: "Education", Keywords: []string{" escola", "faculdade", "universidade", " curso", "udemy", " alura", "livraria", "mensalidade escolar", " school", "tuition"}},
		{Category: "Leisure", Keywords: []string{"netflix", "spotify", "cinema", " disney", "prime video", " hbo ", " steam ", "playstation", "ingresso", " show ", " bar "}},
		{Category: "Shopping", Keywords: []string{"amazon", "mercado livre", "mercadolivre", "shopee", "magalu", "magazine luiza", "americanas", " shein", "aliexpress", " loja "}},
		{Category: "Transfers", Keywords: []string{" pix ", " ted ", " doc ", "transferencia", "transferência", "transfer"}},
	}
}
