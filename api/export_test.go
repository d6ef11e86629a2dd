package api

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_KPOExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	issued := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `income`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "invoice_number", "invoice_year", "client_name", "description", "issued_date", "amount", "status"}).
			AddRow(1, "2025-0001", 2025, "Acme", "consulting", issued, "1000.00", "paid").
			AddRow(2, "2025-0002", 2025, "Beta", "support", issued.AddDate(0, 1, 0), "500.00", "issued"))

	router := gin.New()
	router.GET("/export/kpo", NewExportHandler().KPOExcel)

	req := httptest.NewRequest("GET", "/export/kpo?year=2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "kpo_2025.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("KPO 2025")
	require.NoError(t, err)
	// Header, one row per invoice, summary row.
	require.Len(t, rows, 4)
	assert.Equal(t, "Broj fakture", rows[0][2])
	assert.Equal(t, "2025-0001", rows[1][2])
	assert.Equal(t, "2025-0002", rows[2][2])
	// Running total carries into the summary.
	assert.Equal(t, "1500", rows[3][5])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_KPOExcel_BadYear(t *testing.T) {
	router := gin.New()
	router.GET("/export/kpo", NewExportHandler().KPOExcel)

	req := httptest.NewRequest("GET", "/export/kpo?year=169", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
