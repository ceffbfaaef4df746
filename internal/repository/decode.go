package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"InflationPanel/internal/domain/models"
)

// DecodeITO parses the wage-earners document, bare array or {"data": [...]}.
func DecodeITO(b []byte) ([]models.ITORecord, error) {
	raw, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	recs := make([]models.ITORecord, 0)
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return recs, nil
}

// DecodeLabeled parses a document whose rows carry "Date", "<label> Monthly (%)"
// and "<label> Annualized (%)". Missing or null numbers become nil.
func DecodeLabeled(b []byte, label string) ([]models.LabeledRecord, error) {
	raw, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	monthlyKey := label + " Monthly (%)"
	annualKey := label + " Annualized (%)"
	out := make([]models.LabeledRecord, 0, len(rows))
	for i, row := range rows {
		var date string
		if d, ok := row["Date"]; ok {
			if err := json.Unmarshal(d, &date); err != nil {
				return nil, fmt.Errorf("row %d: Date: %w", i, err)
			}
		}
		monthly, err := number(row[monthlyKey])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i, monthlyKey, err)
		}
		annual, err := number(row[annualKey])
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i, annualKey, err)
		}
		out = append(out, models.LabeledRecord{Date: date, Monthly: monthly, Annual: annual})
	}
	return out, nil
}

// unwrap returns the array inside {"data": [...]} or the document itself.
func unwrap(b []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if len(wrapped.Data) == 0 {
		return nil, fmt.Errorf("document has no data array")
	}
	return wrapped.Data, nil
}

// number accepts a JSON number, null, or a numeric string.
func number(raw json.RawMessage) (*float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil, err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(str, ",", "."), 64)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
