package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/app"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/config"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/controllers"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/routes"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/services"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/middleware"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
	_ "time/tzdata"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize deal-flow:", err)
	}
	defer application.Close()

	// Repositories
	dealRepo := internal_repositories.NewDealRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(context.Background(), dealRepo); err != nil {
			utils.Logger.Fatal("Failed to seed sample deals:", err)
		}
	}

	// Services
	dealService := services.NewDealService(dealRepo)
	reportService := services.NewReportService(dealRepo)
	exposureCheckService := services.NewExposureCheckService(dealRepo)

	// Controllers
	healthController := controllers.NewHealthController(application.DB)
	dealsController := controllers.NewDealsController(dealService)
	reportsController := controllers.NewReportsController(reportService)
	dateExpressionsController := controllers.NewDateExpressionsController()

	// Router setup
	router := mux.NewRouter()

	// Public Routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Secured routes for staff
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, cfg.TokenIssuer))

	secured.HandleFunc(routes.Deals, dealsController.ListDealsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Deals, dealsController.CreateDealHandler).Methods(http.MethodPost)
	// Registered before routes.Deal so "unconfirmed" is not captured as an id.
	secured.HandleFunc(routes.DealsUnconfirmed, dealsController.ListUnconfirmedHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Deal, dealsController.GetDealHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Deal, dealsController.UpdateDealHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.DealBusinessStatus, dealsController.ChangeBusinessStatusHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealSettlementDate, dealsController.SetSettlementDateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealDocumentStatus, dealsController.SetDocumentStatusHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealSettlementAccount, dealsController.SetSettlementAccountHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealProgressCheckItems, dealsController.UpdateCheckItemsHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealProgressDocuments, dealsController.UpdateDocumentItemsHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.DealProgressStages, dealsController.UpdateStagesHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.ReportsMonthly, reportsController.MonthlyReportHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Reference, reportsController.ReferenceHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DateExpressionsParse, dateExpressionsController.ParseHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DateExpressionsFormat, dateExpressionsController.FormatHandler).Methods(http.MethodGet)

	// Cron job setup
	c := cron.New(cron.WithLocation(internal_utils.BusinessLocation()))

	if cfg.LDFlag_SettlementExposureCheck {
		_, err = c.AddFunc(constants.ExposureCheckCronSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.ExposureCheckJobTimeout)
			defer cancel()
			utils.Logger.Info("Starting settlement exposure check cron job...")
			if _, err := exposureCheckService.CheckUpcomingExposure(ctx); err != nil {
				utils.Logger.WithError(err).Error("Failed to check settlement exposure")
			}
		})
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to schedule settlement exposure check cron")
		}
		c.Start()
		defer c.Stop()
		utils.Logger.Info("Scheduled settlement exposure check")
	} else {
		utils.Logger.Info("Settlement exposure check disabled by flag")
	}

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("deal-flow failed to start:", err)
	}
}
