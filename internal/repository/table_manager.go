package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"botdash/internal/entities"
)

var (
	orderColumns   = []string{"id", "customer_name", "customer_phone", "items", "item_count", "total_amount", "payment_status", "created_at", "updated_at"}
	viewingColumns = []string{"id", "guest_name", "guest_phone", "property_id", "property_name", "viewing_date", "viewing_time", "status", "source", "notes", "created_at"}
)

// WriteOrdersCSV writes one row per order. Line items are flattened into a
// single "2x Rice (50kg) @ 45000; ..." cell.
func WriteOrdersCSV(w io.Writer, orders []entities.Order) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		items := make([]string, len(o.Items))
		for i, it := range o.Items {
			items[i] = fmt.Sprintf("%dx %s @ %d", it.Quantity, it.Product, it.Price)
		}
		rows = append(rows, []string{
			o.ID,
			o.CustomerName,
			o.CustomerPhone,
			strings.Join(items, "; "),
			strconv.Itoa(o.ItemCount()),
			strconv.FormatInt(o.TotalAmount, 10),
			string(o.PaymentStatus),
			o.CreatedAt.Format(time.RFC3339),
			o.UpdatedAt.Format(time.RFC3339),
		})
	}
	return writeTable(w, orderColumns, rows)
}

func WriteViewingsCSV(w io.Writer, viewings []entities.Viewing) error {
	rows := make([][]string, 0, len(viewings))
	for _, v := range viewings {
		rows = append(rows, []string{
			v.ID,
			v.GuestName,
			v.GuestPhone,
			v.PropertyID,
			v.PropertyName,
			v.ViewingDate,
			v.ViewingTime,
			string(v.Status),
			string(v.Source),
			v.Notes,
			v.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeTable(w, viewingColumns, rows)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("row %d write failed: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
