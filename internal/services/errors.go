package services

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v4"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// toAppError maps repository and domain errors onto HTTP responses.
func toAppError(err error, action string) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, internal_utils.ErrDealNotFound):
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Deal not found", Err: err}
	case errors.Is(err, utils.ErrRowVersionConflict):
		return &utils.AppError{StatusCode: http.StatusConflict, Code: utils.ErrCodeRowVersionConflict, Message: "Deal was modified by someone else", Err: err}
	case errors.Is(err, internal_utils.ErrSettlementDateRequired),
		errors.Is(err, internal_utils.ErrSettlementDateNotAllowed),
		errors.Is(err, internal_utils.ErrBankAccountMismatch),
		errors.Is(err, internal_utils.ErrMissingAssignee):
		return &utils.AppError{StatusCode: http.StatusUnprocessableEntity, Code: utils.ErrCodeInvariantViolation, Message: err.Error(), Err: err}
	case errors.Is(err, internal_utils.ErrInvalidStatus),
		errors.Is(err, internal_utils.ErrInvalidEnumValue),
		errors.Is(err, internal_utils.ErrInvalidAccountCompany),
		errors.Is(err, internal_utils.ErrUnknownProgressItem):
		return &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: err.Error(), Err: err}
	default:
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to " + action, Err: err}
	}
}
