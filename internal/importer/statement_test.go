package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadStatement_CSV(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Description,Amount",
		"15/01/2026,Salary,2500.00",
		`16/01/2026,"Rent, flat 4",-950.00`,
	}, "\n")

	rows, err := ReadStatement(strings.NewReader(csv), "statement.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, rows[0])
	assert.Equal(t, []string{"16/01/2026", "Rent, flat 4", "-950.00"}, rows[2])
}

func TestReadStatement_CSVRaggedRows(t *testing.T) {
	csv := "Date,Description,Amount\n15/01/2026,Salary\n16/01/2026,Rent,-950.00,extra"

	rows, err := ReadStatement(strings.NewReader(csv), "statement.csv")
	require.NoError(t, err, "rows with uneven field counts are tolerated")
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestReadStatement_CSVMalformed(t *testing.T) {
	_, err := ReadStatement(strings.NewReader(`a,"unterminated`), "statement.csv")
	assert.Error(t, err)
}

func TestReadStatement_XLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	cells := [][]any{
		{"Date", "Description", "Amount"},
		{"15/01/2026", "Salary", "2500.00"},
		{"16/01/2026", "Rent", "-950.00"},
	}
	for r, row := range cells {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, workbook.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadStatement(buf, "statement.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, rows[0])
	assert.Equal(t, "Salary", rows[1][1])
}

func TestReadStatement_XLSXExtensionCaseInsensitive(t *testing.T) {
	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetCellValue(workbook.GetSheetName(0), "A1", "Date"))
	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadStatement(buf, "STATEMENT.XLSX")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
}

func TestReadStatement_XLSXCorrupt(t *testing.T) {
	_, err := ReadStatement(strings.NewReader("this is not a zip archive"), "statement.xlsx")
	assert.Error(t, err)
}
