package model

import (
	"time"

	"github.com/lib/pq"
)

// LayoutType selects how a list of publications is rendered client-side.
// It is purely presentational and never affects filtering or grouping.
type LayoutType string

const (
	LayoutGrid    LayoutType = "grid"
	LayoutList    LayoutType = "list"
	LayoutMasonry LayoutType = "masonry"
)

type Publication struct {
	ID         int            `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Content    string         `db:"content" json:"content"`
	ImagePath  *string        `db:"image_path" json:"image_path,omitempty"`
	Date       time.Time      `db:"pub_date" json:"date"`
	LayoutType LayoutType     `db:"layout_type" json:"layout_type"`
	Author     *string        `db:"author" json:"author,omitempty"`
	Tags       pq.StringArray `db:"tags" json:"tags,omitempty"`
	Featured   *bool          `db:"featured" json:"featured,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// Year returns the four-digit grouping key for the publication date.
func (p Publication) Year() int {
	return p.Date.Year()
}
