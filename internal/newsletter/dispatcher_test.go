package newsletter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/model"
)

// fakeStore stubs only the methods the dispatcher touches; anything else
// panics through the embedded nil interface.
type fakeStore struct {
	db.Store

	schedules []model.NewsletterSchedule
	active    []model.Subscriber
	targeted  []model.Subscriber
	bulletins []model.Publication

	runTimesID int
	lastRun    time.Time
	nextRun    *time.Time
	runTimeSet bool
}

func (f *fakeStore) GetScheduleByID(id int) (model.NewsletterSchedule, error) {
	for _, sc := range f.schedules {
		if sc.ID == id {
			return sc, nil
		}
	}
	return model.NewsletterSchedule{}, assert.AnError
}

func (f *fakeStore) ListDueSchedules(now time.Time) ([]model.NewsletterSchedule, error) {
	due := make([]model.NewsletterSchedule, 0, len(f.schedules))
	for _, sc := range f.schedules {
		if sc.Enabled && sc.NextRunAt != nil && !sc.NextRunAt.After(now) {
			due = append(due, sc)
		}
	}
	return due, nil
}

func (f *fakeStore) ListActiveSubscribers() ([]model.Subscriber, error) {
	return f.active, nil
}

func (f *fakeStore) ListSubscribersByIDs(ids []int64) ([]model.Subscriber, error) {
	return f.targeted, nil
}

func (f *fakeStore) ListPublicationsByIDs(ids []int64) ([]model.Publication, error) {
	return f.bulletins, nil
}

func (f *fakeStore) SetScheduleRunTimes(id int, lastRun time.Time, nextRun *time.Time) error {
	f.runTimesID = id
	f.lastRun = lastRun
	f.nextRun = nextRun
	f.runTimeSet = true
	return nil
}

type recordingMailer struct {
	to      []string
	subject string
	body    string
	calls   int
}

func (m *recordingMailer) Send(to []string, subject, htmlBody string) error {
	m.to = to
	m.subject = subject
	m.body = htmlBody
	m.calls++
	return nil
}

func subscriber(email string, status model.SubscriberStatus) model.Subscriber {
	return model.Subscriber{Email: email, Status: status}
}

func weeklySchedule(id int) model.NewsletterSchedule {
	return model.NewsletterSchedule{
		ID:                id,
		Title:             "Weekly Bulletin",
		CronExpression:    "0 0 9 ? * SUN",
		Timezone:          "UTC",
		TargetBulletinIDs: []int64{1},
		SendToAll:         true,
		Enabled:           true,
	}
}

func TestDispatcherRunNow(t *testing.T) {
	store := &fakeStore{
		schedules: []model.NewsletterSchedule{weeklySchedule(7)},
		active: []model.Subscriber{
			subscriber("active@example.com", model.SubscriberActive),
			subscriber("pending@example.com", model.SubscriberPending),
		},
		bulletins: []model.Publication{{
			ID:      1,
			Title:   "Harvest Festival",
			Content: "Join us on the green.",
			Date:    time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		}},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(store, mailer, time.Minute)

	require.NoError(t, d.RunNow(7))

	// only active subscribers receive mail
	assert.Equal(t, []string{"active@example.com"}, mailer.to)
	assert.Equal(t, "Weekly Bulletin", mailer.subject)
	assert.Contains(t, mailer.body, "Harvest Festival")
	assert.Contains(t, mailer.body, "September 20, 2026")

	require.True(t, store.runTimeSet)
	assert.Equal(t, 7, store.runTimesID)
	require.NotNil(t, store.nextRun)
	assert.Equal(t, time.Sunday, store.nextRun.Weekday())
}

func TestDispatcherTargetedRecipientsMustBeActive(t *testing.T) {
	sc := weeklySchedule(3)
	sc.SendToAll = false
	sc.SubscriberIDs = []int64{10, 11}

	store := &fakeStore{
		schedules: []model.NewsletterSchedule{sc},
		targeted: []model.Subscriber{
			subscriber("kept@example.com", model.SubscriberActive),
			subscriber("dropped@example.com", model.SubscriberUnsubscribed),
		},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(store, mailer, time.Minute)

	require.NoError(t, d.RunNow(3))
	assert.Equal(t, []string{"kept@example.com"}, mailer.to)
}

func TestDispatcherNoRecipientsSkipsMailButRecordsRun(t *testing.T) {
	store := &fakeStore{schedules: []model.NewsletterSchedule{weeklySchedule(5)}}
	mailer := &recordingMailer{}
	d := NewDispatcher(store, mailer, time.Minute)

	require.NoError(t, d.RunNow(5))
	assert.Zero(t, mailer.calls)
	assert.True(t, store.runTimeSet)
}

func TestDispatcherOneShotGetsNoNextRun(t *testing.T) {
	sc := weeklySchedule(9)
	sc.CronExpression = "0 0 12 25 12 ? 2020"

	store := &fakeStore{
		schedules: []model.NewsletterSchedule{sc},
		active:    []model.Subscriber{subscriber("a@example.com", model.SubscriberActive)},
	}
	d := NewDispatcher(store, &recordingMailer{}, time.Minute)

	require.NoError(t, d.RunNow(9))
	require.True(t, store.runTimeSet)
	assert.Nil(t, store.nextRun)
}

func TestDispatchDueOnlyRunsDueSchedules(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	due := weeklySchedule(1)
	due.NextRunAt = &past
	notYet := weeklySchedule(2)
	notYet.NextRunAt = &future
	disabled := weeklySchedule(3)
	disabled.NextRunAt = &past
	disabled.Enabled = false

	store := &fakeStore{
		schedules: []model.NewsletterSchedule{due, notYet, disabled},
		active:    []model.Subscriber{subscriber("a@example.com", model.SubscriberActive)},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(store, mailer, time.Minute)

	d.dispatchDue(now)

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, 1, store.runTimesID)
}

func TestRenderDigest(t *testing.T) {
	desc := "News from the parish"
	author := "Pastor John"
	sc := model.NewsletterSchedule{Title: "Monthly Digest", Description: &desc}
	bulletins := []model.Publication{{
		Title:   "Choir Practice",
		Content: "Thursdays at 7pm.",
		Author:  &author,
		Date:    time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
	}}

	body, err := RenderDigest(sc, bulletins)
	require.NoError(t, err)
	assert.Contains(t, body, "<h1>Monthly Digest</h1>")
	assert.Contains(t, body, "News from the parish")
	assert.Contains(t, body, "Choir Practice")
	assert.Contains(t, body, "Pastor John")
	assert.Contains(t, body, "February 5, 2026")
}

func TestRenderDigestWithoutDescription(t *testing.T) {
	body, err := RenderDigest(model.NewsletterSchedule{Title: "Plain"}, nil)
	require.NoError(t, err)
	assert.Contains(t, body, "<h1>Plain</h1>")
	assert.False(t, strings.Contains(body, "<p></p>"))
}

func TestGenerateCodeShape(t *testing.T) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for i := 0; i < 50; i++ {
		code := generateCode()
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.Contains(t, charset, string(r))
		}
	}
}
