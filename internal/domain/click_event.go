// Package domain holds the click-tracking data model shared by the
// repository, service, and delivery layers.
package domain

import "time"

// ClickEvent is one recorded click on a tracked UI control. Events are
// append-only: written once at ingestion time and never updated.
type ClickEvent struct {
	ID            string    `json:"id"`
	ButtonName    string    `json:"button_name"`
	PageURL       string    `json:"page_url,omitempty"`
	RedirectURL   string    `json:"redirect_url,omitempty"`
	Referrer      string    `json:"referrer,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
	DeviceType    string    `json:"device_type"`
	TrafficSource string    `json:"traffic_source"`
	CreatedAt     time.Time `json:"created_at"`
}

// ButtonStat is the derived per-button aggregate, computed on demand and
// never persisted. Window counts use half-open ranges [asOf-window, asOf).
type ButtonStat struct {
	ButtonName  string `json:"button_name"`
	TotalClicks int64  `json:"total_clicks"`
	Last24Hours int64  `json:"last_24_hours"`
	Last7Days   int64  `json:"last_7_days"`
	Last30Days  int64  `json:"last_30_days"`
}

// HistoryPoint is one calendar day in a dense daily series. Date is a UTC
// day key in "2006-01-02" form.
type HistoryPoint struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// DetailPage is one page of raw click events, newest first.
type DetailPage struct {
	Data       []ClickEvent `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}
