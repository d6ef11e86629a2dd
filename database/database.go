package database

import (
	"fmt"

	"pausal/config"
	"pausal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the MySQL connection, migrates the schema and seeds the fixed
// payment-type catalog.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.Client{},
		&models.Enterprise{},
		&models.Project{},
		&models.Contract{},
		&models.ContractItem{},
		&models.Income{},
		&models.Expense{},
		&models.CashTransaction{},
		&models.PaymentType{},
		&models.YearDecision{},
		&models.MonthlyObligation{},
		&models.PlannedExpense{},
		&models.PlannedExpensePayment{},
		&models.InvoiceSequence{},
		&models.ProjectSequence{},
	); err != nil {
		return err
	}

	if err := seedPaymentTypes(DB); err != nil {
		return err
	}

	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("database initialized")
	return nil
}

// seedPaymentTypes inserts the fixed statutory catalog when the table is empty.
func seedPaymentTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PaymentType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	types := []models.PaymentType{
		{Code: models.PaymentTypeTax, NameSR: "Porez na prihod", NameRU: "Налог на доход", SortOrder: 1},
		{Code: models.PaymentTypePension, NameSR: "Doprinos za PIO", NameRU: "Взнос ПИО", SortOrder: 2},
		{Code: models.PaymentTypeHealth, NameSR: "Zdravstveno osiguranje", NameRU: "Медстрахование", SortOrder: 3},
		{Code: models.PaymentTypeUnemployment, NameSR: "Nezaposlenost", NameRU: "Безработица", SortOrder: 4},
	}
	return db.Create(&types).Error
}

// GetDB returns the shared connection.
func GetDB() *gorm.DB {
	return DB
}
