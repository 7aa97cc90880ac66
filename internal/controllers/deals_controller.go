package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dtos"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/services"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
)

type DealsController struct {
	dealService *services.DealService
	validate    *validator.Validate
}

func NewDealsController(s *services.DealService) *DealsController {
	return &DealsController{dealService: s, validate: validator.New()}
}

// GET /api/v1/deals
func (c *DealsController) ListDealsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "limit must be an integer", nil, err)
			return
		}
		limit = n
	}

	resp, err := c.dealService.ListDeals(r.Context(), q.Get("category"), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/deals/unconfirmed
func (c *DealsController) ListUnconfirmedHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.dealService.ListUnconfirmed(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/deals
func (c *DealsController) CreateDealHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateDealRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.CreateDeal(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/deals/{id}
func (c *DealsController) GetDealHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.dealService.GetDeal(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PATCH /api/v1/deals/{id}
func (c *DealsController) UpdateDealHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.UpdateDealRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.UpdateDeal(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/business-status
func (c *DealsController) ChangeBusinessStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.ChangeBusinessStatusRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.ChangeBusinessStatus(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/settlement-date
func (c *DealsController) SetSettlementDateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.SetSettlementDateRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.SetSettlementDate(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/document-status
func (c *DealsController) SetDocumentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.SetDocumentStatusRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.SetDocumentStatus(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/settlement-account
func (c *DealsController) SetSettlementAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.SetSettlementAccountRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.SetSettlementAccount(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/progress/check-items
func (c *DealsController) UpdateCheckItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.UpdateCheckItemsRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.UpdateCheckItems(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/progress/documents
func (c *DealsController) UpdateDocumentItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.UpdateDocumentItemsRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.UpdateDocumentItems(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/deals/{id}/progress/stages
func (c *DealsController) UpdateStagesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := dealIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.UpdateStagesRequest
	if !decodeRequest(w, r, c.validate, &req) {
		return
	}
	resp, err := c.dealService.UpdateStages(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
