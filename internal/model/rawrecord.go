package model

import "time"

// RawRecord is the intermediate type produced by event log providers and consumed by the classifier.
// It only lives for the duration of one read pass.
type RawRecord struct {
	Code         uint32    // event identifier, low 16 bits of the OS event ID
	Generated    time.Time // when the event was generated
	RecordNumber uint32    // position in the log, provider-specific
	Source       string    // event source name, when the provider exposes it
}
