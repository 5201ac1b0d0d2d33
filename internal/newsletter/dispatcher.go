package newsletter

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/model"
	"github.com/parish-tech/steeple/internal/schedule"
)

var digestTemplate = template.Must(template.New("digest").Parse(`<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{range .Bulletins}}<div>
<h2>{{.Title}}</h2>
<p><em>{{.Date.Format "January 2, 2006"}}{{if .Author}}, {{.Author}}{{end}}</em></p>
<p>{{.Content}}</p>
</div>
{{end}}`))

// Dispatcher walks due newsletter schedules on a fixed tick, renders the
// target bulletins into a digest and mails it to the resolved recipients.
type Dispatcher struct {
	store    db.Store
	mailer   Mailer
	interval time.Duration
}

func NewDispatcher(store db.Store, mailer Mailer, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Dispatcher{store: store, mailer: mailer, interval: interval}
}

// Start blocks until ctx is cancelled, dispatching due schedules each tick.
func (d *Dispatcher) Start(ctx context.Context) error {
	log.Info().Dur("interval", d.interval).Msg("newsletter dispatcher started")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("newsletter dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			d.dispatchDue(time.Now())
		}
	}
}

func (d *Dispatcher) dispatchDue(now time.Time) {
	due, err := d.store.ListDueSchedules(now)
	if err != nil {
		return // already logged by the store
	}
	for _, sc := range due {
		if err := d.run(sc, now); err != nil {
			log.Error().Err(err).Int("schedule_id", sc.ID).Msg("newsletter dispatch failed")
		}
	}
}

// RunNow dispatches a single schedule immediately, regardless of its
// enabled flag or next-run instant.
func (d *Dispatcher) RunNow(id int) error {
	sc, err := d.store.GetScheduleByID(id)
	if err != nil {
		return err
	}
	return d.run(sc, time.Now())
}

func (d *Dispatcher) run(sc model.NewsletterSchedule, now time.Time) error {
	recipients, err := d.resolveRecipients(sc)
	if err != nil {
		return err
	}

	bulletins, err := d.store.ListPublicationsByIDs(sc.TargetBulletinIDs)
	if err != nil {
		return err
	}

	body, err := RenderDigest(sc, bulletins)
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		log.Warn().Int("schedule_id", sc.ID).Msg("newsletter schedule has no recipients")
	} else if err := d.mailer.Send(recipients, sc.Title, body); err != nil {
		return err
	}

	// a one-shot or unparseable expression simply gets no next run
	var nextPtr *time.Time
	if next, ok, err := schedule.NextRun(sc.CronExpression, sc.Timezone, now); err == nil && ok {
		nextPtr = &next
	}
	return d.store.SetScheduleRunTimes(sc.ID, now, nextPtr)
}

func (d *Dispatcher) resolveRecipients(sc model.NewsletterSchedule) ([]string, error) {
	var subs []model.Subscriber
	var err error
	if sc.SendToAll {
		subs, err = d.store.ListActiveSubscribers()
	} else {
		subs, err = d.store.ListSubscribersByIDs(sc.SubscriberIDs)
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(subs))
	for _, s := range subs {
		// an explicitly targeted subscriber still has to be active
		if s.Status == model.SubscriberActive {
			out = append(out, s.Email)
		}
	}
	return out, nil
}

// RenderDigest produces the HTML body for a schedule's bulletins.
func RenderDigest(sc model.NewsletterSchedule, bulletins []model.Publication) (string, error) {
	var buf strings.Builder
	data := struct {
		Title       string
		Description *string
		Bulletins   []model.Publication
	}{sc.Title, sc.Description, bulletins}

	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}
