package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/entities"
)

func TestDatasetValidate(t *testing.T) {
	require.NoError(t, groceryDataset().Validate())
	require.NoError(t, propertyDataset().Validate())
}

func TestDatasetValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Dataset)
		want   string
		is     error
	}{
		{
			name:   "foreign conversation",
			mutate: func(d *Dataset) { d.Conversations[0].TenantID = "t2" },
			want:   `conversation c1: belongs to tenant "t2"`,
		},
		{
			name:   "duplicate order id",
			mutate: func(d *Dataset) { d.Orders[1].ID = "ORD-1" },
			want:   "order ORD-1: duplicate id",
		},
		{
			name:   "total mismatch",
			mutate: func(d *Dataset) { d.Orders[0].TotalAmount = 999 },
			is:     entities.ErrTotalMismatch,
		},
		{
			name:   "orphan message",
			mutate: func(d *Dataset) { d.Messages[0].ConversationID = "c404" },
			want:   `unknown conversation "c404"`,
		},
		{
			name:   "property status on grocery tenant",
			mutate: func(d *Dataset) { d.Conversations[1].Status = entities.ConversationViewingBooked },
			want:   "c2",
		},
		{
			name:   "viewings on grocery tenant",
			mutate: func(d *Dataset) { d.Viewings = propertyDataset().Viewings },
			want:   "cannot have viewings",
		},
		{
			name:   "missing timestamp",
			mutate: func(d *Dataset) { d.Messages[1].Timestamp = time.Time{} },
			is:     entities.ErrMissingTimestamp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := groceryDataset()
			tt.mutate(&d)
			err := d.Validate()
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDatasetValidateJoinsErrors(t *testing.T) {
	d := groceryDataset()
	d.Orders[0].TotalAmount = 1
	d.Users[0].Email = "nope"
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrTotalMismatch)
	assert.Contains(t, err.Error(), "user u1")
}
