package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/cyphera/multichain-auth/internal/handlers"
	"github.com/cyphera/multichain-auth/internal/wallet"
	"github.com/cyphera/multichain-auth/libs/go/logger"
	"github.com/cyphera/multichain-auth/libs/go/middleware"
	"github.com/cyphera/multichain-auth/libs/go/permissions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewProviderFromEnv builds the wallet capability view from SUPPORTED_CHAIN_IDS
// and WALLET_ACCOUNTS (comma-separated lists)
func NewProviderFromEnv() *wallet.Provider {
	chainIDs := splitEnvList(os.Getenv("SUPPORTED_CHAIN_IDS"))
	addresses := splitEnvList(os.Getenv("WALLET_ACCOUNTS"))

	if len(chainIDs) == 0 {
		logger.Fatal("SUPPORTED_CHAIN_IDS environment variable is required")
	}
	if len(addresses) == 0 {
		logger.Fatal("WALLET_ACCOUNTS environment variable is required")
	}

	logger.Info("Initialized wallet capability view",
		zap.Strings("chain_ids", chainIDs),
		zap.Int("accounts", len(addresses)),
	)
	return wallet.NewProvider(chainIDs, addresses)
}

// NewRouter assembles the gin engine with middleware and routes
func NewRouter(provider *wallet.Provider, registry *permissions.Registry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	permissionHandler := handlers.NewPermissionHandler(provider, registry)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/permissions/validate", permissionHandler.ValidateCaveat)
		v1.POST("/permissions/grants", permissionHandler.CreateGrant)
		v1.GET("/permissions/grants/:origin", permissionHandler.GetGrant)
		v1.DELETE("/permissions/grants/:origin", permissionHandler.RevokeGrant)

		v1.POST("/wallet/events/account-removed", permissionHandler.AccountRemoved)
		v1.POST("/wallet/events/network-removed", permissionHandler.NetworkRemoved)
	}

	return router
}

func splitEnvList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
