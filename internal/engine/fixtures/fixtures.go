package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hejijunhao/seclog/internal/model"
)

//go:embed security.json
var securityJSON []byte

// Entry is a synthetic Security-channel record with the pattern the default
// catalog is expected to assign it ("" when the code is outside the catalog).
type Entry struct {
	Code            uint32    `json:"event_id"`
	Generated       time.Time `json:"time_generated"`
	RecordNumber    uint32    `json:"record_number"`
	ExpectedPattern string    `json:"expected_pattern"`
	Description     string    `json:"description"`
}

// Record converts the entry into the raw form a provider would emit.
func (e Entry) Record() model.RawRecord {
	return model.RawRecord{
		Code:         e.Code,
		Generated:    e.Generated,
		RecordNumber: e.RecordNumber,
		Source:       "Microsoft-Windows-Security-Auditing",
	}
}

// LoadSecurity parses the embedded security.json, newest record first.
func LoadSecurity() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(securityJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse security.json: %w", err)
	}
	return entries, nil
}

// Records returns the embedded entries as raw records.
func Records() ([]model.RawRecord, error) {
	entries, err := LoadSecurity()
	if err != nil {
		return nil, err
	}
	out := make([]model.RawRecord, len(entries))
	for i, e := range entries {
		out[i] = e.Record()
	}
	return out, nil
}
