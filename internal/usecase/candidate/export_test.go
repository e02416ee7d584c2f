package candidate

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	input := sampleCandidate("ada@x.com")
	input.City = "London, UK"
	_, uuid, err := svc.Create(ctx, input)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "ada@x.com", row[2])
	assert.Equal(t, uuid, row[3])
	assert.Equal(t, "7", row[6])
	assert.Equal(t, "Go;PostgreSQL", row[8])
	assert.Equal(t, "London, UK", row[10])
	assert.Equal(t, "4200.5", row[11])
	assert.Equal(t, "Not Specified", row[12])
}

func TestExportCSV_EmptyStoreWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestService().ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{csvHeader}, records)
}

func TestExportCSV_StoreFailure(t *testing.T) {
	boom := errors.New("store down")
	svc := NewService(failingRepo{err: boom})

	var buf bytes.Buffer
	require.ErrorIs(t, svc.ExportCSV(context.Background(), &buf), boom)
	assert.Zero(t, buf.Len())
}
