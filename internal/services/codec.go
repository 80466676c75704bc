package services

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// entryRecord is the persisted form of one entry.
type entryRecord struct {
	Name    string `json:"name"`
	Group   string `json:"group"`
	Planned string `json:"planned"`
	Actual  string `json:"actual"`
}

func encodeIncome(v decimal.Decimal) string {
	return v.String()
}

func decodeIncome(raw string) (decimal.Decimal, error) {
	v, err := core.ParseIncome(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode income %q: %w", raw, err)
	}
	return v, nil
}

func encodeEntries(entries []core.Entry) (string, error) {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = entryRecord{
			Name:    e.Name,
			Group:   string(e.Group),
			Planned: e.Planned,
			Actual:  e.Actual,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode entries: %w", err)
	}
	return string(data), nil
}

// decodeEntries rejects the whole record when any entry is unusable; the
// caller then starts from an empty list.
func decodeEntries(raw string) ([]core.Entry, error) {
	var records []entryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode entries: %w: %v", core.ErrCorruptRecord, err)
	}

	entries := make([]core.Entry, 0, len(records))
	for i, r := range records {
		g, err := core.ParseGroup(r.Group)
		if err != nil {
			return nil, fmt.Errorf("decode entry %d group %q: %w", i, r.Group, core.ErrCorruptRecord)
		}
		entries = append(entries, core.Entry{
			Name:    r.Name,
			Group:   g,
			Planned: r.Planned,
			Actual:  r.Actual,
		})
	}
	return entries, nil
}
