package controllers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dtos"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

type DateExpressionsController struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewDateExpressionsController() *DateExpressionsController {
	return &DateExpressionsController{validate: validator.New(), now: internal_utils.BusinessNow}
}

// POST /api/v1/date-expressions/parse
func (c *DateExpressionsController) ParseHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ParseDateExpressionRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	e := dateexpr.Parse(req.Text, c.now())
	resp := dtos.DateExpressionResponse{Expression: e, Resolved: e.Resolved()}
	if e.Resolved() {
		resp.Display = dateexpr.FormatPicker(*e.Date)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/date-expressions/format?date=YYYY-MM-DD
func (c *DateExpressionsController) FormatHandler(w http.ResponseWriter, r *http.Request) {
	day, err := time.ParseInLocation(constants.DateLayout, r.URL.Query().Get("date"), internal_utils.BusinessLocation())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date must be YYYY-MM-DD", nil, err)
		return
	}
	e := dateexpr.FromPicker(day)
	utils.RespondWithJSON(w, http.StatusOK, dtos.DateExpressionResponse{
		Expression: e,
		Resolved:   true,
		Display:    e.Text,
	})
}
