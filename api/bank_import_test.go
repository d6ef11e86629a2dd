package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankImportHandler_ApplyRejectsEmptyBatch(t *testing.T) {
	router := gin.New()
	router.POST("/bank-import/apply", NewBankImportHandler().Apply)

	req := httptest.NewRequest("POST", "/bank-import/apply", bytes.NewBufferString(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestBankImportHandler_ApplyCollectsLineErrors(t *testing.T) {
	setTestConfig(t)

	router := gin.New()
	router.POST("/bank-import/apply", NewBankImportHandler().Apply)

	body := `{"items":[
		{"type":"transfer","tx":{"date":"2025-03-01","amount":100}},
		{"type":"income","tx":{"date":"01.03.2025","amount":100}},
		{"type":"expense","tx":{"date":"2025-03-01","amount":0}}
	]}`
	req := httptest.NewRequest("POST", "/bank-import/apply", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			CreatedIncome  int      `json:"created_income"`
			CreatedExpense int      `json:"created_expense"`
			Errors         []string `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.CreatedIncome)
	assert.Equal(t, 0, resp.Data.CreatedExpense)
	assert.Len(t, resp.Data.Errors, 3)
}
