// Command statement_preview parses a bank statement locally and prints the
// drafts an import would produce, without touching the database.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
)

var (
	file   = flag.String("f", "", "Path of the CSV or OFX statement to preview.")
	format = flag.String("format", "", "Force the statement format (csv or ofx).")
	rules  = flag.String("rules", os.Getenv("CATEGORY_RULES_FILE"), "Category rules file.")
)

func printDraft(idx, total int, d statement.Draft) {
	color.New(color.BgBlue, color.FgWhite).Printf(" [%3d of %3d] ", idx, total)
	color.New(color.BgYellow, color.FgBlack).Printf(" %10s ", d.Date.Format("2006-01-02"))

	desc := d.Description
	if len(desc) > 40 {
		desc = desc[:40]
	}
	color.New(color.BgWhite, color.FgBlack).Printf(" %-40s", desc)
	color.New(color.BgCyan, color.FgBlack).Printf(" %-16s ", d.Category)

	amount := color.New(color.BgRed, color.FgWhite).PrintfFunc()
	if d.Type == domain.Income {
		amount = color.New(color.BgGreen, color.FgBlack).PrintfFunc()
	}
	amount(" %12s ", d.Amount.StringFixed(2))
	if d.DateGuessed {
		color.New(color.FgYellow).Print(" (date guessed)")
	}
	fmt.Println()
}

func main() {
	flag.Parse()
	if *file == "" {
		*file = flag.Arg(0)
	}
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		color.Red("Unable to read %s: %v", *file, err)
		os.Exit(1)
	}

	categorizer, err := config.LoadCategorizer(*rules)
	if err != nil {
		color.Red("Unable to load category rules: %v", err)
		os.Exit(1)
	}

	f := statement.Format(strings.ToLower(*format))
	if f == "" {
		f = statement.DetectFormat(filepath.Base(*file), content)
	}

	result, err := statement.NewParser(statement.WithCategorizer(categorizer)).Parse(content, f)
	if err != nil {
		color.Red("Unable to parse statement: %v", err)
		os.Exit(1)
	}

	color.New(color.Bold).Printf("%s statement: %d transactions, %d skipped\n\n", strings.ToUpper(string(result.Format)), len(result.Drafts), len(result.Skipped))
	for i, d := range result.Drafts {
		printDraft(i+1, len(result.Drafts), d)
	}
	if len(result.Skipped) > 0 {
		fmt.Println()
		for _, s := range result.Skipped {
			color.New(color.FgHiBlack).Printf("line %d skipped: %s\n", s.Line, s.Reason)
		}
	}
}
