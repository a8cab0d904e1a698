package seclog

import "time"

// Event is a classified event log record.
type Event struct {
	Code      uint32    `json:"event_id"`
	Generated time.Time `json:"time_generated"`
	Date      string    `json:"date"` // DD-MM-YYYY in the scanner's zone
	Time      string    `json:"time"` // HH:MM:SS in the scanner's zone
	Pattern   string    `json:"type"`
}

// Summary describes one Load.
type Summary struct {
	ID       string // correlates with the load_id log attribute
	Channel  string
	Read     int // records read from the log
	Kept     int // records stored after selection and classification
	Gaps     int // selected records no pattern claimed
	Duration time.Duration
}
