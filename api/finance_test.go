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

func TestFinanceHandler_Summary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setTestConfig(t)

	sums := func(pairs ...string) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"period", "total"})
		for i := 0; i+1 < len(pairs); i += 2 {
			rows.AddRow(pairs[i], pairs[i+1])
		}
		return rows
	}
	mock.ExpectQuery("SELECT DATE_FORMAT\\(issued_date.* FROM `income`").
		WillReturnRows(sums("2025-02", "1000"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(date.* FROM `expenses`").
		WillReturnRows(sums("2025-02", "300"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(cash_transactions.date.* FROM `cash_transactions`").
		WillReturnRows(sums("2025-02", "1000"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sums("2025-02", "300"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sums())

	router := gin.New()
	router.GET("/finance/summary", NewFinanceHandler().Summary)

	req := httptest.NewRequest("GET", "/finance/summary?from=2025-01-01&to=2025-03-31&group_by=month&mode=both", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Series []struct {
				Period           string `json:"period"`
				NetProfitAccrual string `json:"net_profit_accrual"`
			} `json:"series"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Series, 3)
	assert.Equal(t, "2025-02", resp.Data.Series[1].Period)
	assert.Equal(t, "700", resp.Data.Series[1].NetProfitAccrual)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceHandler_SummaryRejectsBadGroupBy(t *testing.T) {
	router := gin.New()
	router.GET("/finance/summary", NewFinanceHandler().Summary)

	req := httptest.NewRequest("GET", "/finance/summary?group_by=week", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestFinanceHandler_SummaryRejectsBadDate(t *testing.T) {
	router := gin.New()
	router.GET("/finance/summary", NewFinanceHandler().Summary)

	req := httptest.NewRequest("GET", "/finance/summary?from=15.02.2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
