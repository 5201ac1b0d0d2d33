package model

import "time"

// SubscriberStatus tracks the verification state machine:
// pending until the emailed code is confirmed, then active.
type SubscriberStatus string

const (
	SubscriberPending      SubscriberStatus = "pending"
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

type Subscriber struct {
	ID         int              `db:"id" json:"id"`
	Email      string           `db:"email" json:"email"`
	Name       *string          `db:"name" json:"name,omitempty"`
	Status     SubscriberStatus `db:"status" json:"status"`
	VerifiedAt *time.Time       `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}
