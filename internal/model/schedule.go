package model

import (
	"time"

	"github.com/lib/pq"
)

// NewsletterSchedule holds a recurring (or one-shot) newsletter send.
// CronExpression uses six or seven space-separated fields:
// second minute hour day-of-month month day-of-week [year].
type NewsletterSchedule struct {
	ID                int           `db:"id" json:"id"`
	Title             string        `db:"title" json:"title"`
	Description       *string       `db:"description" json:"description,omitempty"`
	CronExpression    string        `db:"cron_expression" json:"cron_expression"`
	Timezone          string        `db:"timezone" json:"timezone"`
	TargetBulletinIDs pq.Int64Array `db:"target_bulletin_ids" json:"target_bulletin_ids"`
	SendToAll         bool          `db:"send_to_all" json:"send_to_all"`
	SubscriberIDs     pq.Int64Array `db:"subscriber_ids" json:"subscriber_ids,omitempty"`
	Enabled           bool          `db:"enabled" json:"enabled"`
	LastRunAt         *time.Time    `db:"last_run_at" json:"last_run_at,omitempty"`
	NextRunAt         *time.Time    `db:"next_run_at" json:"next_run_at,omitempty"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}
