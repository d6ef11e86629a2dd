package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObligationHandler_CalendarBuildsMissingMonths(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setTestConfig(t)

	// One active decision, no stored obligations yet: the read itself
	// creates all twelve months before listing them.
	mock.ExpectQuery("SELECT .* FROM `year_decisions`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "year", "payment_type_id", "monthly_amount", "is_provisional", "is_active"}).
			AddRow(1, 2025, 1, "3000", false, true))
	for month := 1; month <= 12; month++ {
		mock.ExpectQuery("SELECT .* FROM `monthly_obligations`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `monthly_obligations`").
			WillReturnResult(sqlmock.NewResult(int64(month), 1))
		mock.ExpectCommit()
	}

	listRows := sqlmock.NewRows([]string{"id", "year", "month", "payment_type_id", "amount", "status"})
	for month := 1; month <= 12; month++ {
		listRows.AddRow(month, 2025, month, 1, "3000", "unpaid")
	}
	mock.ExpectQuery("SELECT .* FROM `monthly_obligations`").WillReturnRows(listRows)

	router := gin.New()
	router.GET("/obligations", NewObligationHandler().Calendar)

	req := httptest.NewRequest("GET", "/obligations?year=2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 12)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObligationHandler_CalendarWithoutDecisions(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setTestConfig(t)

	mock.ExpectQuery("SELECT .* FROM `year_decisions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `monthly_obligations`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.GET("/obligations", NewObligationHandler().Calendar)

	req := httptest.NewRequest("GET", "/obligations?year=2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
