package api

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseHandler_ReverseTwiceConflicts(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setTestConfig(t)

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "description", "amount", "status", "source"}).
			AddRow(1, "office chair", "-12000", "reversed", "manual"))

	router := gin.New()
	router.POST("/expenses/:id/reverse", NewExpenseHandler().Reverse)

	req := httptest.NewRequest("POST", "/expenses/1/reverse", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
