package models

import (
	"fmt"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// AccountCompany is the group company whose bank account receives a
// settlement. The zero value means none has been chosen yet.
type AccountCompany string

const (
	AccountCompanyNone   AccountCompany = ""
	AccountCompanyReijit AccountCompany = "REIJIT"
	AccountCompanyLife   AccountCompany = "LIFE"
	AccountCompanyMS     AccountCompany = "MS"
)

// BankAccount names one account of an AccountCompany, e.g. "GMOメイン".
type BankAccount string

type accountCompanyInfo struct {
	label    string
	accounts []BankAccount
}

var accountCompanyOrder = []AccountCompany{AccountCompanyReijit, AccountCompanyLife, AccountCompanyMS}

var accountCompanies = map[AccountCompany]accountCompanyInfo{
	AccountCompanyReijit: {
		label:    "レイジット",
		accounts: []BankAccount{"GMOメイン", "GMOサブ", "住信", "近産"},
	},
	AccountCompanyLife: {
		label:    "ライフ",
		accounts: []BankAccount{"GMOメイン", "GMOサブ"},
	},
	AccountCompanyMS: {
		label:    "エムズ",
		accounts: []BankAccount{"GMOメイン", "GMOサブ", "住信", "ペイペイ①", "ペイペイ②", "ペイペイ③", "楽天①", "楽天②"},
	},
}

// AccountCompanies lists the selectable companies in display order.
func AccountCompanies() []AccountCompany {
	return append([]AccountCompany(nil), accountCompanyOrder...)
}

// Valid reports whether c is a known company or the empty selection.
func (c AccountCompany) Valid() bool {
	if c == AccountCompanyNone {
		return true
	}
	_, ok := accountCompanies[c]
	return ok
}

func (c AccountCompany) Label() string {
	return accountCompanies[c].label
}

// BankAccounts returns the accounts held by c; none for the empty selection.
func (c AccountCompany) BankAccounts() []BankAccount {
	return append([]BankAccount(nil), accountCompanies[c].accounts...)
}

func (c AccountCompany) HasBankAccount(a BankAccount) bool {
	for _, v := range accountCompanies[c].accounts {
		if v == a {
			return true
		}
	}
	return false
}

// ParseAccountCompany accepts the code, the Japanese label or "".
func ParseAccountCompany(v string) (AccountCompany, error) {
	if v == "" {
		return AccountCompanyNone, nil
	}
	for _, c := range accountCompanyOrder {
		if string(c) == v || c.Label() == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", utils.ErrInvalidAccountCompany, v)
}
