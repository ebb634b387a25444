// Package export renders the product list as the CSV the mobile client
// downloads. UTF-8 BOM up front so spreadsheet apps detect the encoding of
// the Korean labels.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// Placeholder labels for missing fields, kept verbatim from the product UI.
const (
	FallbackManufacturer = "제조사 미입력"
	FallbackZone         = "구역 미지정"
)

var headers = []string{"product_name", "zone", "manufacturer", "stock", "expiry_date"}

// Row is one exported product line with labels already resolved.
type Row struct {
	Name         string
	Zone         string
	Manufacturer string
	Stock        int
	ExpiryDate   string // YYYY-MM-DD or empty
}

// ZoneLabel resolves the zone column, falling back to the placeholder.
func ZoneLabel(name *string) string {
	if name == nil || *name == "" {
		return FallbackZone
	}
	return *name
}

// ManufacturerLabel resolves the manufacturer column.
func ManufacturerLabel(m *string) string {
	if m == nil || *m == "" {
		return FallbackManufacturer
	}
	return *m
}

// ProductsCSV renders the rows with the fixed header, prefixed by a BOM.
func ProductsCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{r.Name, r.Zone, r.Manufacturer, strconv.Itoa(r.Stock), r.ExpiryDate}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName builds the download name, minute precision, local warehouse time.
func FileName(now time.Time) string {
	return fmt.Sprintf("onnuri-products-%s.csv", now.Format("20060102-1504"))
}
