package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/services"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
)

type ReportsController struct {
	reportService *services.ReportService
}

func NewReportsController(s *services.ReportService) *ReportsController {
	return &ReportsController{reportService: s}
}

// GET /api/v1/reports/monthly/{year}/{month}
func (c *ReportsController) MonthlyReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, yErr := strconv.Atoi(vars["year"])
	month, mErr := strconv.Atoi(vars["month"])
	if yErr != nil || mErr != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "year and month must be integers", nil)
		return
	}

	report, err := c.reportService.MonthlyReport(r.Context(), year, time.Month(month), r.URL.Query().Get("account"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// GET /api/v1/reference
func (c *ReportsController) ReferenceHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.reportService.Reference())
}
