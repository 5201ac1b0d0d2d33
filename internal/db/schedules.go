package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/model"
)

const scheduleColumns = `
	id, title, description, cron_expression, timezone, target_bulletin_ids,
	send_to_all, subscriber_ids, enabled, last_run_at, next_run_at, created_at, updated_at`

func (s *pgStore) ListSchedules() ([]model.NewsletterSchedule, error) {
	var all []model.NewsletterSchedule
	query := `SELECT` + scheduleColumns + ` FROM newsletter_schedules ORDER BY id;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list newsletter schedules")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetScheduleByID(id int) (model.NewsletterSchedule, error) {
	var sc model.NewsletterSchedule
	query := `SELECT` + scheduleColumns + ` FROM newsletter_schedules WHERE id = $1;`

	err := s.db.Get(&sc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewsletterSchedule{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to get newsletter schedule")
	}
	return sc, err
}

func (s *pgStore) CreateSchedule(draft ScheduleDraft) (model.NewsletterSchedule, error) {
	var sc model.NewsletterSchedule
	query := `
	INSERT INTO newsletter_schedules
	(title, description, cron_expression, timezone, target_bulletin_ids,
	 send_to_all, subscriber_ids, enabled, next_run_at, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	RETURNING` + scheduleColumns + `;`

	if err := s.db.Get(&sc, query,
		draft.Title,
		draft.Description,
		draft.CronExpression,
		draft.Timezone,
		pq.Array(draft.TargetBulletinIDs),
		draft.SendToAll,
		pq.Array(draft.SubscriberIDs),
		draft.Enabled,
		draft.NextRunAt,
	); err != nil {
		log.Error().Err(err).Msg("failed to create newsletter schedule")
		return model.NewsletterSchedule{}, err
	}
	return sc, nil
}

func (s *pgStore) UpdateSchedule(id int, draft ScheduleDraft) (model.NewsletterSchedule, error) {
	var sc model.NewsletterSchedule
	query := `
	UPDATE newsletter_schedules SET
	title = $2,
	description = $3,
	cron_expression = $4,
	timezone = $5,
	target_bulletin_ids = $6,
	send_to_all = $7,
	subscriber_ids = $8,
	enabled = $9,
	next_run_at = $10,
	updated_at = now()
	WHERE id = $1
	RETURNING` + scheduleColumns + `;`

	err := s.db.Get(&sc, query, id,
		draft.Title,
		draft.Description,
		draft.CronExpression,
		draft.Timezone,
		pq.Array(draft.TargetBulletinIDs),
		draft.SendToAll,
		pq.Array(draft.SubscriberIDs),
		draft.Enabled,
		draft.NextRunAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewsletterSchedule{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update newsletter schedule")
	}
	return sc, err
}

func (s *pgStore) DeleteSchedule(id int) error {
	if _, err := s.db.Exec(`DELETE FROM newsletter_schedules WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete newsletter schedule")
		return err
	}
	return nil
}

// returns enabled schedules whose next-run instant has arrived.
func (s *pgStore) ListDueSchedules(now time.Time) ([]model.NewsletterSchedule, error) {
	var due []model.NewsletterSchedule
	query := `
	SELECT` + scheduleColumns + `
	FROM newsletter_schedules
	WHERE enabled AND next_run_at IS NOT NULL AND next_run_at <= $1
	ORDER BY next_run_at;`

	if err := s.db.Select(&due, query, now); err != nil {
		log.Error().Err(err).Msg("failed to list due newsletter schedules")
		return nil, err
	}
	return due, nil
}

func (s *pgStore) SetScheduleRunTimes(id int, lastRun time.Time, nextRun *time.Time) error {
	query := `
	UPDATE newsletter_schedules SET
	last_run_at = $2,
	next_run_at = $3,
	updated_at = now()
	WHERE id = $1;`

	if _, err := s.db.Exec(query, id, lastRun, nextRun); err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to record schedule run")
		return err
	}
	return nil
}
