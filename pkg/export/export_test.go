package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

type asset struct {
	ID   int64
	Name string
}

var assetColumns = []Column[asset]{
	{Header: "ID", Value: func(a asset) string { return strconv.FormatInt(a.ID, 10) }},
	{Header: "Name", Value: func(a asset) string { return a.Name }},
}

func TestWriteProducesReadableWorkbook(t *testing.T) {
	rows := []asset{{1, "ThinkPad T14"}, {2, "Standing Desk"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Assets", rows, assetColumns))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := file.Sheet["Assets"]
	require.True(t, ok, "sheet Assets missing")
	assert.Equal(t, 3, sheet.MaxRow)

	cell, err := sheet.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Name", cell.Value)
	cell, err = sheet.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", cell.Value)
}

func TestWriteEmptyRowsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Assets", nil, assetColumns))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, file.Sheet["Assets"].MaxRow)
}

func TestWriteRequiresColumns(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "Assets", []asset{{1, "x"}}, nil))
}

func TestTable(t *testing.T) {
	headers, rows := Table([]asset{{1, "ThinkPad T14"}}, assetColumns)
	assert.Equal(t, []string{"ID", "Name"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "ThinkPad T14"}, rows[0])
}
