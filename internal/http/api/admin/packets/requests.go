package packets

// PublicationPayload is the writable body shared by create and update;
// the route, not the payload shape, decides which operation runs.
type PublicationPayload struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	ImagePath  *string  `json:"image_path"`
	Date       string   `json:"date" binding:"required"` // "YYYY-MM-DD"
	LayoutType string   `json:"layout_type" binding:"omitempty,oneof=grid list masonry"`
	Author     *string  `json:"author"`
	Tags       []string `json:"tags"`
	Featured   *bool    `json:"featured"`
}

type ChurchDetailPayload struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Website      *string `json:"website" binding:"omitempty,url"`
	ServiceTimes *string `json:"service_times"`
	PastorName   *string `json:"pastor_name"`
}

// BuilderPayload mirrors the guided-mode schedule builder state.
type BuilderPayload struct {
	Frequency  string   `json:"frequency" binding:"required,oneof=once daily weekly monthly"`
	Time       string   `json:"time"`
	DateOnce   string   `json:"date_once"`
	Weekdays   []string `json:"weekdays"`
	DayOfMonth int      `json:"day_of_month"`
}

// SchedulePayload accepts either a raw cron expression (advanced mode) or
// builder state (guided mode). When both are present the raw expression
// wins and the builder is display-only.
type SchedulePayload struct {
	Title             string          `json:"title" binding:"required"`
	Description       *string         `json:"description"`
	CronExpression    string          `json:"cron_expression"`
	Builder           *BuilderPayload `json:"builder"`
	Timezone          string          `json:"timezone"`
	TargetBulletinIDs []int64         `json:"target_bulletin_ids"`
	SendToAll         bool            `json:"send_to_all"`
	SubscriberIDs     []int64         `json:"subscriber_ids"`
	Enabled           bool            `json:"enabled"`
}

type UpdateSubscriberRequest struct {
	Name   *string `json:"name"`
	Status string  `json:"status" binding:"required,oneof=pending active unsubscribed"`
}
