package router

import (
	"pausal/api"
	"pausal/config"
	_ "pausal/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires every endpoint.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		financeHandler := api.NewFinanceHandler()
		finance := v1.Group("/finance")
		{
			finance.GET("/summary", financeHandler.Summary)
			finance.GET("/cash-flow", financeHandler.CashFlow)
			finance.GET("/receivables", financeHandler.Receivables)
			finance.GET("/by-project", financeHandler.ByProject)
			finance.GET("/income-limit", financeHandler.IncomeLimit)
		}

		incomeHandler := api.NewIncomeHandler()
		incomes := v1.Group("/incomes")
		{
			incomes.POST("", incomeHandler.Create)
			incomes.GET("", incomeHandler.List)
			incomes.GET("/next-number", incomeHandler.NextNumber)
			incomes.GET("/check-number", incomeHandler.CheckNumber)
			incomes.GET("/:id", incomeHandler.Get)
			incomes.PUT("/:id", incomeHandler.Update)
			incomes.DELETE("/:id", incomeHandler.Cancel)
			incomes.POST("/:id/mark-paid", incomeHandler.MarkPaid)
			incomes.POST("/:id/mark-unpaid", incomeHandler.MarkUnpaid)
		}

		expenseHandler := api.NewExpenseHandler()
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expenseHandler.Create)
			expenses.GET("", expenseHandler.List)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
			expenses.POST("/:id/reverse", expenseHandler.Reverse)
		}

		obligationHandler := api.NewObligationHandler()
		obligations := v1.Group("/obligations")
		{
			obligations.GET("", obligationHandler.Calendar)
			obligations.GET("/summary", obligationHandler.Summary)
			obligations.GET("/payment-types", obligationHandler.PaymentTypes)
			obligations.POST("/generate", obligationHandler.Generate)
			obligations.POST("/decisions", obligationHandler.CreateDecision)
			obligations.GET("/decisions", obligationHandler.ListDecisions)
			obligations.DELETE("/decisions/:id", obligationHandler.DeactivateDecision)
			obligations.POST("/:id/mark-paid", obligationHandler.MarkPaid)
			obligations.POST("/:id/mark-unpaid", obligationHandler.MarkUnpaid)
		}

		plannedHandler := api.NewPlannedExpenseHandler()
		planned := v1.Group("/planned-expenses")
		{
			planned.POST("", plannedHandler.Create)
			planned.GET("", plannedHandler.List)
			planned.GET("/upcoming", plannedHandler.Upcoming)
			planned.PUT("/:id", plannedHandler.Update)
			planned.DELETE("/:id", plannedHandler.Delete)
			planned.POST("/:id/mark-paid", plannedHandler.MarkPaid)
			planned.POST("/:id/unmark-paid", plannedHandler.UnmarkPaid)
		}

		bankHandler := api.NewBankImportHandler()
		v1.POST("/bank-import/apply", bankHandler.Apply)

		clientHandler := api.NewClientHandler()
		clients := v1.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Archive)
		}

		contractHandler := api.NewContractHandler()
		contracts := v1.Group("/contracts")
		{
			contracts.POST("", contractHandler.Create)
			contracts.GET("", contractHandler.List)
			contracts.PUT("/:id", contractHandler.Update)
			contracts.DELETE("/:id", contractHandler.Cancel)
		}

		projectHandler := api.NewProjectHandler()
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Archive)
		}

		enterpriseHandler := api.NewEnterpriseHandler()
		v1.GET("/enterprise", enterpriseHandler.Get)
		v1.PUT("/enterprise", enterpriseHandler.Upsert)

		exportHandler := api.NewExportHandler()
		v1.GET("/export/kpo", exportHandler.KPOExcel)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware allows cross-origin requests from the desktop frontend.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
