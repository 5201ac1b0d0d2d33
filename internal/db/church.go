package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/model"
)

const churchDetailColumns = `
	id, name, address, phone, email, website, service_times, pastor_name, created_at, updated_at`

func (s *pgStore) ListChurchDetails() ([]model.ChurchDetail, error) {
	var all []model.ChurchDetail
	query := `SELECT` + churchDetailColumns + ` FROM church_details ORDER BY id;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list church details")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetChurchDetailByID(id int) (model.ChurchDetail, error) {
	var d model.ChurchDetail
	query := `SELECT` + churchDetailColumns + ` FROM church_details WHERE id = $1;`

	err := s.db.Get(&d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ChurchDetail{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to get church detail")
	}
	return d, err
}

func (s *pgStore) CreateChurchDetail(draft ChurchDetailDraft) (model.ChurchDetail, error) {
	var d model.ChurchDetail
	query := `
	INSERT INTO church_details
	(name, address, phone, email, website, service_times, pastor_name, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, now(), now())
	RETURNING` + churchDetailColumns + `;`

	if err := s.db.Get(&d, query,
		draft.Name,
		draft.Address,
		draft.Phone,
		draft.Email,
		draft.Website,
		draft.ServiceTimes,
		draft.PastorName,
	); err != nil {
		log.Error().Err(err).Msg("failed to create church detail")
		return model.ChurchDetail{}, err
	}
	return d, nil
}

func (s *pgStore) UpdateChurchDetail(id int, draft ChurchDetailDraft) (model.ChurchDetail, error) {
	var d model.ChurchDetail
	query := `
	UPDATE church_details SET
	name = $2,
	address = $3,
	phone = $4,
	email = $5,
	website = $6,
	service_times = $7,
	pastor_name = $8,
	updated_at = now()
	WHERE id = $1
	RETURNING` + churchDetailColumns + `;`

	err := s.db.Get(&d, query, id,
		draft.Name,
		draft.Address,
		draft.Phone,
		draft.Email,
		draft.Website,
		draft.ServiceTimes,
		draft.PastorName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ChurchDetail{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update church detail")
	}
	return d, err
}

func (s *pgStore) DeleteChurchDetail(id int) error {
	if _, err := s.db.Exec(`DELETE FROM church_details WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete church detail")
		return err
	}
	return nil
}
