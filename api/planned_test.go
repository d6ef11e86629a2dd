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
)

func TestPlannedExpenseHandler_MarkPaidTwiceConflicts(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setTestConfig(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `planned_expenses`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "amount", "currency", "period", "start_date", "is_active"}).
			AddRow(1, "Rent", "500", "RSD", "monthly", start, true))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `planned_expense_payments`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	router := gin.New()
	router.POST("/planned-expenses/:id/mark-paid", NewPlannedExpenseHandler().MarkPaid)

	body := `{"due_date":"2025-02-05"}`
	req := httptest.NewRequest("POST", "/planned-expenses/1/mark-paid", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
