package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrDealNotFound             = errors.New("deal_not_found")
	ErrInvalidStatus            = errors.New("invalid_status")
	ErrSettlementDateRequired   = errors.New("settlement_date_required")
	ErrSettlementDateNotAllowed = errors.New("settlement_date_not_allowed")
	ErrInvalidAccountCompany    = errors.New("invalid_account_company")
	ErrBankAccountMismatch      = errors.New("bank_account_mismatch")
	ErrUnknownProgressItem      = errors.New("unknown_progress_item")
	ErrMissingAssignee          = errors.New("missing_assignee")
	ErrInvalidEnumValue         = errors.New("invalid_enum_value")
)
