package packets

type PublicationResponse struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImagePath  *string  `json:"image_path,omitempty"`
	ImageURL   *string  `json:"image_url,omitempty"`
	Date       string   `json:"date"` // "YYYY-MM-DD"
	LayoutType string   `json:"layout_type"`
	Author     *string  `json:"author,omitempty"`
	Tags       []string `json:"tags"`
	Featured   *bool    `json:"featured,omitempty"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type PaginatedPublicationsResponse struct {
	Items []PublicationResponse `json:"items"`
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
	Total int                   `json:"total"`
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
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type SubscriberResponse struct {
	ID         int     `json:"id"`
	Email      string  `json:"email"`
	Name       *string `json:"name,omitempty"`
	Status     string  `json:"status"`
	VerifiedAt *string `json:"verified_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type PaginatedSubscribersResponse struct {
	Items []SubscriberResponse `json:"items"`
	Page  int                  `json:"page"`
	Size  int                  `json:"size"`
	Total int                  `json:"total"`
}

// ScheduleResponse is returned bare, without the data envelope the other
// modules use.
type ScheduleResponse struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description,omitempty"`
	CronExpression    string          `json:"cron_expression"`
	Builder           *BuilderPayload `json:"builder,omitempty"`
	Timezone          string          `json:"timezone"`
	TargetBulletinIDs []int64         `json:"target_bulletin_ids"`
	SendToAll         bool            `json:"send_to_all"`
	SubscriberIDs     []int64         `json:"subscriber_ids,omitempty"`
	Enabled           bool            `json:"enabled"`
	LastRunAt         *string         `json:"last_run_at,omitempty"`
	NextRunAt         *string         `json:"next_run_at,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type UploadImageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
