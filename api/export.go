package api

import (
	"fmt"
	"net/http"

	"pausal/database"
	"pausal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler renders the statutory KPO income book as a spreadsheet.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// KPOExcel exports the income book for one year.
// @Summary Export KPO book
// @Description Generates the KPO income book (knjiga o ostvarenom prometu) for a calendar year as an XLSX file. Cancelled invoices are excluded.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "year, defaults to the current one"
// @Success 200 {file} file "XLSX file"
// @Failure 400 {object} Response
// @Router /api/v1/export/kpo [get]
func (h *ExportHandler) KPOExcel(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	var incomes []models.Income
	if err := database.DB.
		Where("invoice_year = ? AND status <> ?", year, models.IncomeStatusCancelled).
		Order("issued_date, id").
		Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load incomes"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("KPO %d", year)
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 40)
	f.SetColWidth(sheetName, "E", "E", 16)
	f.SetColWidth(sheetName, "F", "F", 16)

	headers := []string{"R.br.", "Datum", "Broj fakture", "Opis", "Prihod od delatnosti", "Ukupan prihod"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	running := 0.0
	for i, income := range incomes {
		row := i + 2
		amount, _ := income.Amount.Round(2).Float64()
		running += amount
		description := income.Description
		if income.ClientName != "" {
			description = income.ClientName + ": " + description
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), income.IssuedDate.Format("02.01.2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), income.InvoiceNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), running)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	summaryRow := len(incomes) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Ukupno")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("D%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), running)
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", summaryRow), running)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("kpo_%d.xlsx", year)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to generate spreadsheet"})
		return
	}
}
