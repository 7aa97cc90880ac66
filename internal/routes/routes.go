package routes

const (
	Health = "/health"

	Deals                  = "/api/v1/deals"
	DealsUnconfirmed       = "/api/v1/deals/unconfirmed"
	Deal                   = "/api/v1/deals/{id}"
	DealBusinessStatus     = "/api/v1/deals/{id}/business-status"
	DealSettlementDate     = "/api/v1/deals/{id}/settlement-date"
	DealDocumentStatus     = "/api/v1/deals/{id}/document-status"
	DealSettlementAccount  = "/api/v1/deals/{id}/settlement-account"
	DealProgressCheckItems = "/api/v1/deals/{id}/progress/check-items"
	DealProgressDocuments  = "/api/v1/deals/{id}/progress/documents"
	DealProgressStages     = "/api/v1/deals/{id}/progress/stages"
	ReportsMonthly         = "/api/v1/reports/monthly/{year}/{month}"
	DateExpressionsParse   = "/api/v1/date-expressions/parse"
	DateExpressionsFormat  = "/api/v1/date-expressions/format"
	Reference              = "/api/v1/reference"
)
