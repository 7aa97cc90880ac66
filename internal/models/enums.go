package models

import (
	"fmt"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// ContractType is the acquisition structure of a deal. Empty means unset.
type ContractType string

const (
	ContractTypeNone            ContractType = ""
	ContractTypeABBC            ContractType = "AB_BC"
	ContractTypeAC              ContractType = "AC"
	ContractTypeBreach          ContractType = "BREACH"
	ContractTypeBreachScheduled ContractType = "BREACH_SCHEDULED"
	ContractTypeBrokerBuy       ContractType = "BROKER_BUY"
	ContractTypeLawyer          ContractType = "LAWYER"
)

var contractTypeOrder = []ContractType{
	ContractTypeABBC, ContractTypeAC, ContractTypeBreach,
	ContractTypeBreachScheduled, ContractTypeBrokerBuy, ContractTypeLawyer,
}

var contractTypeLabels = map[ContractType]string{
	ContractTypeABBC:            "AB・BC",
	ContractTypeAC:              "AC",
	ContractTypeBreach:          "違約",
	ContractTypeBreachScheduled: "違約予定",
	ContractTypeBrokerBuy:       "買仲",
	ContractTypeLawyer:          "弁護士",
}

func ContractTypes() []ContractType {
	return append([]ContractType(nil), contractTypeOrder...)
}

func (c ContractType) Label() string { return contractTypeLabels[c] }

func (c ContractType) Valid() bool {
	if c == ContractTypeNone {
		return true
	}
	_, ok := contractTypeLabels[c]
	return ok
}

func ParseContractType(v string) (ContractType, error) {
	if v == "" {
		return ContractTypeNone, nil
	}
	for _, c := range contractTypeOrder {
		if string(c) == v || c.Label() == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: contract type %q", utils.ErrInvalidEnumValue, v)
}

// IntermediaryCompany is the "B company" standing between seller and buyer.
type IntermediaryCompany string

const (
	IntermediaryNone              IntermediaryCompany = ""
	IntermediaryMSCompany         IntermediaryCompany = "MS_COMPANY"
	IntermediaryLifeInvest        IntermediaryCompany = "LIFE_INVEST"
	IntermediaryReijit            IntermediaryCompany = "REIJIT"
	IntermediaryTransactionBroker IntermediaryCompany = "TRANSACTION_BROKER"
)

var intermediaryOrder = []IntermediaryCompany{
	IntermediaryMSCompany, IntermediaryLifeInvest, IntermediaryReijit, IntermediaryTransactionBroker,
}

var intermediaryLabels = map[IntermediaryCompany]string{
	IntermediaryMSCompany:         "M'scompany",
	IntermediaryLifeInvest:        "ライフインベスト",
	IntermediaryReijit:            "レイジット",
	IntermediaryTransactionBroker: "取引業者",
}

func IntermediaryCompanies() []IntermediaryCompany {
	return append([]IntermediaryCompany(nil), intermediaryOrder...)
}

func (c IntermediaryCompany) Label() string { return intermediaryLabels[c] }

func (c IntermediaryCompany) Valid() bool {
	if c == IntermediaryNone {
		return true
	}
	_, ok := intermediaryLabels[c]
	return ok
}

func ParseIntermediaryCompany(v string) (IntermediaryCompany, error) {
	if v == "" {
		return IntermediaryNone, nil
	}
	for _, c := range intermediaryOrder {
		if string(c) == v || c.Label() == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: intermediary company %q", utils.ErrInvalidEnumValue, v)
}

// Suggestion lists offered by entry forms. Fields using them stay free text.
var (
	BrokerCompanySuggestions = []string{
		"レイジット", "TOUSEI", "アーク", "RD", "NBF", "SHINE TERRACE", "エスク", "M'scompany",
	}
	AssigneeSuggestions = []string{
		"湊", "岩田", "清原", "堀", "薮田", "早川", "近藤", "小林", "牟田", "國眼", "坂本", "横山",
	}
	LeadSourceSuggestions   = []string{"反響", "テレアポ", "DM", "紹介"}
	MortgageBankSuggestions = []string{
		"ジャックス", "SBJ銀行", "ソニー銀行", "楽天銀行", "イオン銀行", "オリックス銀行",
		"東京スター銀行", "auじぶん銀行",
	}
)
