package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/infrastructure"
	"botdash/internal/usecases"
)

func TestWriteReport(t *testing.T) {
	store, err := infrastructure.NewDatasetStore("", zerolog.Nop())
	require.NoError(t, err)
	now := time.Date(2024, 1, 16, 11, 0, 0, 0, time.UTC)
	dashboard := usecases.NewDashboardUsecase(store, func() time.Time { return now }, 0)

	view, err := dashboard.Dashboard("lekki-shortlets")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, view))
	out := buf.String()

	assert.Contains(t, out, "Lekki Shortlets (property)")
	assert.Contains(t, out, "Week 15 Jan to 21 Jan 2024, generated 16 Jan, 12:00 PM")
	assert.Contains(t, out, "Conversion Rate")
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "Recent activity")
	assert.Contains(t, out, "Viewing Booked")
}

func TestReportCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	err := app.Run([]string{"dashboard", "--now", "2024-01-16T11:00:00Z", "report", "--tenant", "marmen"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Marmen Groceries (grocery)")
	assert.Contains(t, buf.String(), "₦16,080")

	err = newApp().Run([]string{"dashboard", "--now", "soon", "report", "-t", "marmen"})
	assert.ErrorContains(t, err, "DASHBOARD_NOW")

	err = newApp().Run([]string{"dashboard", "report", "-t", "nobody"})
	assert.Error(t, err)
}
