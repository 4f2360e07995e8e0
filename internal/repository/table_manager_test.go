package repository

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, groceryDataset().Orders))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, orderColumns, rows[0])
	assert.Equal(t, []string{
		"ORD-2", "Bola", "+2348022222222", "1x Oil @ 900; 3x Salt @ 100", "4", "1200", "pending",
		"2024-01-16T10:00:00Z", "2024-01-16T10:00:00Z",
	}, rows[2])
}

func TestWriteViewingsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteViewingsCSV(&buf, propertyDataset().Viewings))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, viewingColumns, rows[0])
	assert.Equal(t, "VW-1", rows[1][0])
	assert.Equal(t, "scheduled", rows[1][7])
}

func TestWriteEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))
	assert.Equal(t, "id,customer_name,customer_phone,items,item_count,total_amount,payment_status,created_at,updated_at\n", buf.String())
}
