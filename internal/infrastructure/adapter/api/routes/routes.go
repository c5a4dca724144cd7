package routes

import (
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the API handlers
type Handlers struct {
	Session      *handler.SessionHandler
	Cards        *handler.CardHandler
	Transactions *handler.TransactionHandler
	Sync         *handler.SyncHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	session := router.Group("/session")
	{
		session.GET("", h.Session.GetSession)
		session.POST("/login", h.Session.Login)
		session.POST("/federated", h.Session.LoginFederated)
		session.POST("/logout", h.Session.Logout)

		session.PUT("/backup", h.Session.UpdateBackup)
		session.GET("/backup/validate", h.Session.ValidateBackupToken)
		session.GET("/backups", h.Session.ListBackups)
		session.DELETE("/backups/:documentId", h.Session.DeleteBackup)
	}

	cards := router.Group("/cards")
	{
		cards.GET("", h.Cards.ListCards)
		cards.POST("", h.Cards.CreateCard)
		cards.GET("/:cardId", h.Cards.GetCard)
		cards.PATCH("/:cardId", h.Cards.UpdateCard)
		cards.DELETE("/:cardId", h.Cards.DeleteCard)
		cards.GET("/:cardId/balance", h.Cards.GetCardBalance)

		cards.GET("/:cardId/transactions", h.Transactions.ListByCard)
		cards.POST("/:cardId/transactions", h.Transactions.CreateTransaction)
	}

	transactions := router.Group("/transactions")
	{
		transactions.GET("/recent", h.Transactions.ListRecent)
		transactions.PATCH("/:transactionId", h.Transactions.UpdateTransaction)
		transactions.DELETE("/:transactionId", h.Transactions.DeleteTransaction)
	}

	router.GET("/balance", h.Cards.GetTotalBalance)

	router.GET("/settings", h.Sync.GetSettings)
	router.PATCH("/settings", h.Sync.UpdateSettings)

	sync := router.Group("/sync")
	{
		sync.POST("/push", h.Sync.Push)
		sync.POST("/pull", h.Sync.Pull)
		sync.GET("/status", h.Sync.GetStatus)
		sync.DELETE("/error", h.Sync.ClearError)
	}

	router.GET("/preferences", h.Session.GetPreferences)
	router.PUT("/preferences", h.Session.SetPreferences)

	router.NoRoute(middleware.NotFound())
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	idGenerator coreport.IDGenerator,
) {
	router.Use(middleware.RequestID(idGenerator))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}
