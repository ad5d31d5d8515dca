package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dshills/gridview/internal/record"
)

func decodeDelimited(data []byte, comma rune) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing delimited data: %w", err)
	}

	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoRecords
	}

	header := make([]string, len(rows[start]))
	var props propertySet
	for i, h := range rows[start] {
		name := strings.TrimSpace(h)
		if name == "" || props.seen[name] {
			name = fmt.Sprintf("column%d", i+1)
		}
		header[i] = name
		props.add(name)
	}

	records := make([]*record.Record, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if isEmptyRow(row) {
			continue
		}
		fields := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || cell == "" {
				continue
			}
			fields[header[i]] = cell
		}
		records = append(records, record.New(fields))
	}
	return &Dataset{Records: records, Properties: props.order}, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
