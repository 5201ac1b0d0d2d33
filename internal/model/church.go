package model

import "time"

type ChurchDetail struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Website      *string   `db:"website" json:"website,omitempty"`
	ServiceTimes *string   `db:"service_times" json:"service_times,omitempty"`
	PastorName   *string   `db:"pastor_name" json:"pastor_name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
