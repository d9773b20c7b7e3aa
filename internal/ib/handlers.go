package ib

import (
	"strings"

	"github.com/cleared-dev/brokerstatement/internal/model"
	"github.com/cleared-dev/brokerstatement/internal/statement"
)

// parserState is the mutable state a single parse threads through every handler.
type parserState struct {
	builder     *statement.Builder
	taxes       *taxTracker
	navCurrency string
}

func newParserState(navCurrency string) *parserState {
	return &parserState{
		builder:     statement.NewBuilder(),
		taxes:       newTaxTracker(),
		navCurrency: navCurrency,
	}
}

// tableHandler extracts one table's data rows into the parser state.
type tableHandler interface {
	// dataTypes returns the row kinds the table accepts, or nil to accept any.
	dataTypes() []string
	parse(s *parserState, r record) error
}

var dataOnly = []string{kindData}

var tableHandlers = map[string]tableHandler{
	"Statement":                        statementInfoHandler{},
	"Net Asset Value":                  netAssetValueHandler{},
	"Withholding Tax":                  withholdingTaxHandler{},
	"Deposits & Withdrawals":           depositsHandler{},
	"Financial Instrument Information": instrumentInfoHandler{},
}

// handlerFor returns the handler for a table name. Unknown tables get a no-op handler.
func handlerFor(table string) (tableHandler, bool) {
	if h, ok := tableHandlers[table]; ok {
		return h, true
	}
	return unknownTableHandler{}, false
}

type statementInfoHandler struct{}

func (statementInfoHandler) dataTypes() []string { return dataOnly }

func (statementInfoHandler) parse(s *parserState, r record) error {
	name, err := r.get("Field Name")
	if err != nil {
		return err
	}
	if name != "Period" {
		return nil
	}

	value, err := r.get("Field Value")
	if err != nil {
		return err
	}
	period, err := parsePeriod(value)
	if err != nil {
		return err
	}
	return s.builder.SetPeriod(period)
}

type netAssetValueHandler struct{}

func (netAssetValueHandler) dataTypes() []string { return dataOnly }

func (netAssetValueHandler) parse(s *parserState, r record) error {
	// Some statement variants lay this table out without an asset class column.
	assetClass, err := r.get("Asset Class")
	if err != nil {
		return nil
	}
	if assetClass != "Cash" && assetClass != "Stock" {
		return nil
	}

	total, err := r.get("Current Total")
	if err != nil {
		return err
	}
	amount, err := model.ParseMoney(s.navCurrency, total)
	if err != nil {
		return err
	}
	return s.builder.AddTotalValue(amount)
}

type withholdingTaxHandler struct{}

func (withholdingTaxHandler) dataTypes() []string { return dataOnly }

func (withholdingTaxHandler) parse(s *parserState, r record) error {
	currency, err := r.get("Currency")
	if err != nil {
		return err
	}
	if currency == "Total" {
		return nil
	}

	value, err := r.get("Date")
	if err != nil {
		return err
	}
	date, err := parseDate(value)
	if err != nil {
		return err
	}

	description, err := r.get("Description")
	if err != nil {
		return err
	}

	value, err = r.get("Amount")
	if err != nil {
		return err
	}
	tax, err := model.ParseMoney(currency, value)
	if err != nil {
		return err
	}

	return s.taxes.add(model.TaxKey{Date: date, Description: description}, tax)
}

type depositsHandler struct{}

func (depositsHandler) dataTypes() []string { return dataOnly }

// parse records deposits. Withdrawals are not told apart from deposits.
func (depositsHandler) parse(s *parserState, r record) error {
	currency, err := r.get("Currency")
	if err != nil {
		return err
	}
	if strings.HasPrefix(currency, "Total") {
		return nil
	}

	value, err := r.get("Settle Date")
	if err != nil {
		return err
	}
	date, err := parseDate(value)
	if err != nil {
		return err
	}

	value, err = r.get("Amount")
	if err != nil {
		return err
	}
	amount, err := model.ParsePositiveMoney(currency, value)
	if err != nil {
		return err
	}

	s.builder.AddDeposit(model.Deposit{Date: date, Amount: amount})
	return nil
}

type instrumentInfoHandler struct{}

func (instrumentInfoHandler) dataTypes() []string { return dataOnly }

func (instrumentInfoHandler) parse(s *parserState, r record) error {
	symbol, err := r.get("Symbol")
	if err != nil {
		return err
	}
	description, err := r.get("Description")
	if err != nil {
		return err
	}
	s.builder.SetTicker(symbol, description)
	return nil
}

type unknownTableHandler struct{}

func (unknownTableHandler) dataTypes() []string              { return nil }
func (unknownTableHandler) parse(*parserState, record) error { return nil }
