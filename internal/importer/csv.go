package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finrep-dev/finrep/internal/model"
)

const dateFormat = "2006-01-02"

// AccountsHeader is the expected header of accounts.csv.
const AccountsHeader = "id,code,name,type,sub_type,equity_class,active,balance"

const (
	acctFields     = 8
	colAcctID      = 0
	colAcctCode    = 1
	colAcctName    = 2
	colAcctType    = 3
	colAcctSubType = 4
	colAcctEqClass = 5
	colAcctActive  = 6
	colAcctBalance = 7
)

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != acctFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", acctFields, len(record))
	}

	active, err := strconv.ParseBool(record[colAcctActive])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing active %q: %w", record[colAcctActive], err)
	}

	balance, err := decimal.NewFromString(record[colAcctBalance])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colAcctBalance], err)
	}

	return model.Account{
		ID:          record[colAcctID],
		Code:        record[colAcctCode],
		Name:        record[colAcctName],
		Type:        model.AccountType(record[colAcctType]),
		SubType:     model.AccountSubType(record[colAcctSubType]),
		EquityClass: model.EquityClass(record[colAcctEqClass]),
		Active:      active,
		Balance:     balance,
	}, nil
}

// TransactionsHeader is the expected header of transactions.csv.
const TransactionsHeader = "account_id,date,amount"

const (
	txFields    = 3
	colTxAcctID = 0
	colTxDate   = 1
	colTxAmount = 2
)

// ReadTransactions reads transactions.csv.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colTxDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colTxDate], err)
	}

	amount, err := decimal.NewFromString(record[colTxAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colTxAmount], err)
	}

	return model.Transaction{
		AccountID: record[colTxAcctID],
		Date:      date,
		Amount:    amount,
	}, nil
}

// CashFlowsHeader is the expected header of cashflows.csv.
const CashFlowsHeader = "date,amount,direction,source,purpose,status"

const (
	flowFields       = 6
	colFlowDate      = 0
	colFlowAmount    = 1
	colFlowDirection = 2
	colFlowSource    = 3
	colFlowPurpose   = 4
	colFlowStatus    = 5
)

// ReadCashFlows reads cashflows.csv.
func ReadCashFlows(r io.Reader) ([]model.CashFlowRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = flowFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cash flows CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var flows []model.CashFlowRecord
	for i, rec := range records[1:] {
		flow, err := UnmarshalCashFlow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		flows = append(flows, flow)
	}
	return flows, nil
}

// UnmarshalCashFlow converts a CSV row to a CashFlowRecord.
func UnmarshalCashFlow(record []string) (model.CashFlowRecord, error) {
	if len(record) != flowFields {
		return model.CashFlowRecord{}, fmt.Errorf("expected %d fields, got %d", flowFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colFlowDate])
	if err != nil {
		return model.CashFlowRecord{}, fmt.Errorf("parsing date %q: %w", record[colFlowDate], err)
	}

	amount, err := decimal.NewFromString(record[colFlowAmount])
	if err != nil {
		return model.CashFlowRecord{}, fmt.Errorf("parsing amount %q: %w", record[colFlowAmount], err)
	}

	return model.CashFlowRecord{
		Date:      date,
		Amount:    amount,
		Direction: model.FlowDirection(record[colFlowDirection]),
		Source:    record[colFlowSource],
		Purpose:   record[colFlowPurpose],
		Status:    model.FlowStatus(record[colFlowStatus]),
	}, nil
}
