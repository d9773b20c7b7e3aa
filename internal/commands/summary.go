package commands

import (
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/brokerstatement/internal/model"
	"github.com/cleared-dev/brokerstatement/internal/statement"
)

// statementSummary is the printable view of a parsed statement.
type statementSummary struct {
	File             string            `yaml:"file,omitempty"`
	PeriodStart      string            `yaml:"period_start"`
	PeriodEnd        string            `yaml:"period_end"` // exclusive
	Days             int               `yaml:"days"`
	TotalValue       *moneyLine        `yaml:"total_value,omitempty"`
	Deposits         []moneyLine       `yaml:"deposits,omitempty"`
	WithholdingTaxes []moneyLine       `yaml:"withholding_taxes,omitempty"`
	Tickers          map[string]string `yaml:"tickers,omitempty"`
}

// moneyLine carries the exact amount and its display form, which is rounded
// to the currency's minor units.
type moneyLine struct {
	Date        string `yaml:"date,omitempty"`
	Description string `yaml:"description,omitempty"`
	Amount      string `yaml:"amount"`
	Display     string `yaml:"display"`
}

func newMoneyLine(date civil.Date, description string, m model.Money) moneyLine {
	line := moneyLine{Description: description, Amount: m.String(), Display: m.Format()}
	if date.IsValid() {
		line.Date = date.String()
	}
	return line
}

func summarize(file string, st *statement.Statement) statementSummary {
	s := statementSummary{
		File:        file,
		PeriodStart: st.Period.Start.String(),
		PeriodEnd:   st.Period.End.String(),
		Days:        st.Period.Days(),
		Tickers:     st.Tickers,
	}
	if st.TotalValue != nil {
		total := newMoneyLine(civil.Date{}, "", *st.TotalValue)
		s.TotalValue = &total
	}
	for _, d := range st.Deposits {
		s.Deposits = append(s.Deposits, newMoneyLine(d.Date, "", d.Amount))
	}
	for _, tax := range st.WithholdingTaxes {
		s.WithholdingTaxes = append(s.WithholdingTaxes, newMoneyLine(tax.Date, tax.Description, tax.Amount))
	}
	return s
}

func writeSummaries(w io.Writer, summaries ...statementSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return enc.Close()
}
