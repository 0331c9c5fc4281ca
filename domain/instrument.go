package domain

// Instrument is immutable for the session; the collection is fetched once
// at startup and referenced by id or symbol everywhere else.
type Instrument struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`

	InstrumentType string `json:"instrument_type,omitempty"`
	IsActive       bool   `json:"is_active,omitempty"`
}
