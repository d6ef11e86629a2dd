package api

import (
	"testing"

	"pausal/config"
	"pausal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setTestConfig(t *testing.T) {
	old := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Finance: config.FinanceConfig{
			Currency:            "RSD",
			IncomeLimitPausal:   6000000,
			IncomeLimitVAT:      8000000,
			LimitWarningPercent: 0.9,
			Reconcile: config.ReconcileConfig{
				DeadlineWindowDays: 45,
				AmountTolerance:    0.5,
			},
		},
	}
	t.Cleanup(func() { config.GlobalConfig = old })
}
