package analysisfailures

import "time"

// Failure represents a persisted record of a generation attempt that did not
// produce a report, kept so operators can tell provider outages apart from
// hard faults.
type Failure struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title,omitempty"`
	Kind      string    `json:"kind"` // unavailable | failed | persistence
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
