package reports

import "time"

// ID tipe untuk Report
type ReportID string

// Aggregate Root: Report. One completed analysis, owned by exactly one user.
// Reports are immutable after creation; there is no update or delete.
type Report struct {
	ID            ReportID  `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Title         string    `json:"title"`
	Narrative     string    `json:"narrative,omitempty"`
	DetailPoints  []string  `json:"report_details,omitempty"`
	HTMLReport    string    `json:"html_report"`
	PromptVersion string    `json:"prompt_version,omitempty"`
	MediaURLs     []string  `json:"media_urls,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary is the listing projection of a Report.
type Summary struct {
	ID        ReportID  `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
