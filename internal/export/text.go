package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Text writes the title, a blank line, then one Line per row.
type Text struct{}

func (Text) Extension() string { return "txt" }

func (Text) Encode(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", Title)
	for _, r := range rows {
		bw.WriteString(Line(r))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("text export: %w", err)
	}
	return nil
}

// CSV writes a header row followed by one record per row.
type CSV struct{}

func (CSV) Extension() string { return "csv" }

func (CSV) Encode(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Index),
			strconv.FormatUint(uint64(r.Code), 10),
			r.Date,
			r.Time,
			r.Pattern,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	return nil
}

// NDJSON writes one JSON object per line.
type NDJSON struct{}

func (NDJSON) Extension() string { return "jsonl" }

func (NDJSON) Encode(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("ndjson export: %w", err)
		}
	}
	return nil
}
