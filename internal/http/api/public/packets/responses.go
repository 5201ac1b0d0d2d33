package packets

type PublicationResponse struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   *string  `json:"image_url,omitempty"`
	Date       string   `json:"date"` // "YYYY-MM-DD"
	LayoutType string   `json:"layout_type"`
	Author     *string  `json:"author,omitempty"`
	Tags       []string `json:"tags"`
	Featured   *bool    `json:"featured,omitempty"`
}

// GroupedPublicationsResponse presents year sections in descending order;
// Groups is keyed by the same four-digit year strings as Years.
type GroupedPublicationsResponse struct {
	Years  []string                         `json:"years"`
	Groups map[string][]PublicationResponse `json:"groups"`
	// Columns is present only when a masonry column count was requested.
	Columns [][]PublicationResponse `json:"columns,omitempty"`
}

type ChurchDetailResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Website      *string `json:"website,omitempty"`
	ServiceTimes *string `json:"service_times,omitempty"`
	PastorName   *string `json:"pastor_name,omitempty"`
}

type SubscribeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	// DismissAfterMS tells the client how long to keep the confirmation
	// visible before closing the prompt.
	DismissAfterMS int `json:"dismiss_after_ms,omitempty"`
}
