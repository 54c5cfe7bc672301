package model

// Timestamp is a formatted local timestamp together with the offset used
type Timestamp struct {
	Value    string   `json:"timestamp"`
	Offset   Offset   `json:"offset"`
	Warnings []string `json:"warnings,omitempty"`
}

// OffsetStatus describes the cached global offset
type OffsetStatus struct {
	Offset      Offset `json:"offset"`
	Initialized bool   `json:"initialized"`
}

// OffsetRequest is the body of an offset update. Either Offset or the
// Hours/Minutes pair is used.
type OffsetRequest struct {
	Offset  string `json:"offset,omitempty"`
	Hours   *int   `json:"hours,omitempty"`
	Minutes *int   `json:"minutes,omitempty"`
}

// HealthStatus is the body of the health check response
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
