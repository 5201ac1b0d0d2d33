package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/model"
)

const subscriberColumns = `
	id, email, name, status, verified_at, created_at, updated_at`

func (s *pgStore) CreateSubscriber(email string, name *string) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `
	INSERT INTO newsletter_subscribers (email, name, status, created_at, updated_at)
	VALUES ($1, $2, 'pending', now(), now())
	RETURNING` + subscriberColumns + `;`

	if err := s.db.Get(&sub, query, email, name); err != nil {
		log.Error().Err(err).Msg("failed to create subscriber")
		return model.Subscriber{}, err
	}
	return sub, nil
}

func (s *pgStore) GetSubscriberByID(id int) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `SELECT` + subscriberColumns + ` FROM newsletter_subscribers WHERE id = $1;`

	err := s.db.Get(&sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to get subscriber")
	}
	return sub, err
}

func (s *pgStore) GetSubscriberByEmail(email string) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `SELECT` + subscriberColumns + ` FROM newsletter_subscribers WHERE email = $1;`

	err := s.db.Get(&sub, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get subscriber by email")
	}
	return sub, err
}

func (s *pgStore) ListSubscribers() ([]model.Subscriber, error) {
	var all []model.Subscriber
	query := `SELECT` + subscriberColumns + ` FROM newsletter_subscribers ORDER BY id;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list subscribers")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) ListSubscribersPaginated(limit, offset int) ([]model.Subscriber, int, error) {
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM newsletter_subscribers;`); err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")
		return nil, 0, err
	}

	var page []model.Subscriber
	query := `
	SELECT` + subscriberColumns + `
	FROM newsletter_subscribers
	ORDER BY id
	LIMIT $1 OFFSET $2;`

	if err := s.db.Select(&page, query, limit, offset); err != nil {
		log.Error().Err(err).Msg("failed to list subscribers page")
		return nil, 0, err
	}
	return page, total, nil
}

func (s *pgStore) ListActiveSubscribers() ([]model.Subscriber, error) {
	var all []model.Subscriber
	query := `SELECT` + subscriberColumns + ` FROM newsletter_subscribers WHERE status = 'active' ORDER BY id;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list active subscribers")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) ListSubscribersByIDs(ids []int64) ([]model.Subscriber, error) {
	if len(ids) == 0 {
		return []model.Subscriber{}, nil
	}
	var all []model.Subscriber
	query := `SELECT` + subscriberColumns + ` FROM newsletter_subscribers WHERE id = ANY($1) ORDER BY id;`

	if err := s.db.Select(&all, query, pq.Array(ids)); err != nil {
		log.Error().Err(err).Msg("failed to list subscribers by ids")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) UpdateSubscriber(id int, name *string, status model.SubscriberStatus) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `
	UPDATE newsletter_subscribers SET
	name = $2,
	status = $3,
	updated_at = now()
	WHERE id = $1
	RETURNING` + subscriberColumns + `;`

	err := s.db.Get(&sub, query, id, name, status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update subscriber")
	}
	return sub, err
}

// flips a pending subscriber to active once the emailed code checks out.
func (s *pgStore) MarkSubscriberVerified(email string) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `
	UPDATE newsletter_subscribers SET
	status = 'active',
	verified_at = now(),
	updated_at = now()
	WHERE email = $1
	RETURNING` + subscriberColumns + `;`

	err := s.db.Get(&sub, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to mark subscriber verified")
	}
	return sub, err
}

func (s *pgStore) ReactivateSubscriber(email string) (model.Subscriber, error) {
	var sub model.Subscriber
	query := `
	UPDATE newsletter_subscribers SET
	status = 'active',
	updated_at = now()
	WHERE email = $1 AND verified_at IS NOT NULL
	RETURNING` + subscriberColumns + `;`

	err := s.db.Get(&sub, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to reactivate subscriber")
	}
	return sub, err
}

func (s *pgStore) DeleteSubscriber(id int) error {
	if _, err := s.db.Exec(`DELETE FROM newsletter_subscribers WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete subscriber")
		return err
	}
	return nil
}
