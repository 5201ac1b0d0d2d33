// exposes a Store interface that is passed to API modules and the
// newsletter dispatcher, keeping handlers off the package-level DB handle.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parish-tech/steeple/internal/model"
)

// PublicationDraft carries the writable fields of a publication. Create and
// update are distinct operations selected by the caller; the draft never
// carries identity.
type PublicationDraft struct {
	Title      string
	Content    string
	ImagePath  *string
	Date       time.Time
	LayoutType model.LayoutType
	Author     *string
	Tags       []string
	Featured   *bool
}

// ChurchDetailDraft carries the writable fields of a church-details record.
type ChurchDetailDraft struct {
	Name         string
	Address      string
	Phone        *string
	Email        *string
	Website      *string
	ServiceTimes *string
	PastorName   *string
}

// ScheduleDraft carries the writable fields of a newsletter schedule.
// Run bookkeeping (last/next run) belongs to the dispatcher, except the
// initial next-run instant computed at create/update time.
type ScheduleDraft struct {
	Title             string
	Description       *string
	CronExpression    string
	Timezone          string
	TargetBulletinIDs []int64
	SendToAll         bool
	SubscriberIDs     []int64
	Enabled           bool
	NextRunAt         *time.Time
}

// YearCount is one row of the per-year publication counts.
type YearCount struct {
	Year  int `db:"year" json:"year"`
	Count int `db:"count" json:"count"`
}

type Store interface {
	// admin users
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// publications
	CreatePublication(draft PublicationDraft) (model.Publication, error)
	GetPublicationByID(id int) (model.Publication, error)
	ListPublications() ([]model.Publication, error)
	ListPublicationsByYear(year int) ([]model.Publication, error)
	ListPublicationsPaginated(limit, offset int) ([]model.Publication, int, error)
	ListPublicationsByIDs(ids []int64) ([]model.Publication, error)
	CountPublicationsByYear() ([]YearCount, error)
	UpdatePublication(id int, draft PublicationDraft) (model.Publication, error)
	DeletePublication(id int) error

	// church details
	ListChurchDetails() ([]model.ChurchDetail, error)
	GetChurchDetailByID(id int) (model.ChurchDetail, error)
	CreateChurchDetail(draft ChurchDetailDraft) (model.ChurchDetail, error)
	UpdateChurchDetail(id int, draft ChurchDetailDraft) (model.ChurchDetail, error)
	DeleteChurchDetail(id int) error

	// newsletter subscribers
	CreateSubscriber(email string, name *string) (model.Subscriber, error)
	GetSubscriberByID(id int) (model.Subscriber, error)
	GetSubscriberByEmail(email string) (model.Subscriber, error)
	ListSubscribers() ([]model.Subscriber, error)
	ListSubscribersPaginated(limit, offset int) ([]model.Subscriber, int, error)
	ListActiveSubscribers() ([]model.Subscriber, error)
	ListSubscribersByIDs(ids []int64) ([]model.Subscriber, error)
	UpdateSubscriber(id int, name *string, status model.SubscriberStatus) (model.Subscriber, error)
	MarkSubscriberVerified(email string) (model.Subscriber, error)
	ReactivateSubscriber(email string) (model.Subscriber, error)
	DeleteSubscriber(id int) error

	// newsletter schedules
	ListSchedules() ([]model.NewsletterSchedule, error)
	GetScheduleByID(id int) (model.NewsletterSchedule, error)
	CreateSchedule(draft ScheduleDraft) (model.NewsletterSchedule, error)
	UpdateSchedule(id int, draft ScheduleDraft) (model.NewsletterSchedule, error)
	DeleteSchedule(id int) error
	ListDueSchedules(now time.Time) ([]model.NewsletterSchedule, error)
	SetScheduleRunTimes(id int, lastRun time.Time, nextRun *time.Time) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database}
}
