package api

import "time"

// Link is a shortened link record as the backend reports it. TotalClicks
// and Status are server-owned; the client only displays them.
type Link struct {
	ID             string     `json:"_id"`
	OriginalURL    string     `json:"url"`
	ShortURL       string     `json:"shortUrl"`
	Remark         string     `json:"remark"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpirationDate *time.Time `json:"expirationDate"`
	TotalClicks    int        `json:"totalClicks"`
	Status         string     `json:"status"`
}

// LinkInput is the editable subset of a link sent on create and edit.
// ExpirationDate marshals as null when unset.
type LinkInput struct {
	URL            string     `json:"url"`
	Remark         string     `json:"remark"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// Credentials is the payload returned by a successful login.
type Credentials struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Profile holds the account fields shown on the settings page.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// ClickEvent is one recorded click. Read-only to the client.
type ClickEvent struct {
	CreatedAt   time.Time `json:"createdAt"`
	OriginalURL string    `json:"url"`
	ShortURL    string    `json:"shortUrl"`
	IPAddress   string    `json:"ipAddress"`
	UserDevice  string    `json:"userDevice"`
}

// AnalyticsPage is one server-side page of click events.
type AnalyticsPage struct {
	Items      []ClickEvent `json:"items"`
	TotalCount int          `json:"totalCount"`
}

// DateClicks is the per-day click aggregate for the dashboard chart.
type DateClicks struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

// DeviceClicks is the per-device click aggregate for the dashboard chart.
type DeviceClicks struct {
	Device string `json:"device"`
	Clicks int    `json:"clicks"`
}

// ClickStats is the dashboard aggregate payload.
type ClickStats struct {
	TotalClicks int            `json:"totalClicks"`
	DateWise    []DateClicks   `json:"dateWiseClicks"`
	DeviceWise  []DeviceClicks `json:"deviceWiseClicks"`
}
