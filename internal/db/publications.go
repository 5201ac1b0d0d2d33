package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/model"
)

const publicationColumns = `
	id, title, content, image_path, pub_date, layout_type, author, tags, featured, created_at, updated_at`

func (s *pgStore) CreatePublication(draft PublicationDraft) (model.Publication, error) {
	var p model.Publication
	query := `
	INSERT INTO publications
	(title, content, image_path, pub_date, layout_type, author, tags, featured, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING` + publicationColumns + `;`

	if err := s.db.Get(&p, query,
		draft.Title,
		draft.Content,
		draft.ImagePath,
		draft.Date,
		draft.LayoutType,
		draft.Author,
		pq.Array(draft.Tags),
		draft.Featured,
	); err != nil {
		log.Error().Err(err).Msg("failed to create publication")
		return model.Publication{}, err
	}
	return p, nil
}

func (s *pgStore) GetPublicationByID(id int) (model.Publication, error) {
	var p model.Publication
	query := `SELECT` + publicationColumns + ` FROM publications WHERE id = $1;`

	err := s.db.Get(&p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Publication{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to get publication")
	}
	return p, err
}

func (s *pgStore) ListPublications() ([]model.Publication, error) {
	var all []model.Publication
	query := `SELECT` + publicationColumns + ` FROM publications ORDER BY pub_date DESC, id DESC;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list publications")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) ListPublicationsByYear(year int) ([]model.Publication, error) {
	var all []model.Publication
	query := `
	SELECT` + publicationColumns + `
	FROM publications
	WHERE EXTRACT(YEAR FROM pub_date) = $1
	ORDER BY pub_date DESC, id DESC;`

	if err := s.db.Select(&all, query, year); err != nil {
		log.Error().Err(err).Int("year", year).Msg("failed to list publications by year")
		return nil, err
	}
	return all, nil
}

// returns one page plus the total row count for the pager.
func (s *pgStore) ListPublicationsPaginated(limit, offset int) ([]model.Publication, int, error) {
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM publications;`); err != nil {
		log.Error().Err(err).Msg("failed to count publications")
		return nil, 0, err
	}

	var page []model.Publication
	query := `
	SELECT` + publicationColumns + `
	FROM publications
	ORDER BY pub_date DESC, id DESC
	LIMIT $1 OFFSET $2;`

	if err := s.db.Select(&page, query, limit, offset); err != nil {
		log.Error().Err(err).Msg("failed to list publications page")
		return nil, 0, err
	}
	return page, total, nil
}

func (s *pgStore) ListPublicationsByIDs(ids []int64) ([]model.Publication, error) {
	if len(ids) == 0 {
		return []model.Publication{}, nil
	}
	var all []model.Publication
	query := `
	SELECT` + publicationColumns + `
	FROM publications
	WHERE id = ANY($1)
	ORDER BY pub_date DESC, id DESC;`

	if err := s.db.Select(&all, query, pq.Array(ids)); err != nil {
		log.Error().Err(err).Msg("failed to list publications by ids")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) CountPublicationsByYear() ([]YearCount, error) {
	var counts []YearCount
	query := `
	SELECT EXTRACT(YEAR FROM pub_date)::int AS year, count(*) AS count
	FROM publications
	GROUP BY year
	ORDER BY year DESC;`

	if err := s.db.Select(&counts, query); err != nil {
		log.Error().Err(err).Msg("failed to count publications by year")
		return nil, err
	}
	return counts, nil
}

func (s *pgStore) UpdatePublication(id int, draft PublicationDraft) (model.Publication, error) {
	var p model.Publication
	query := `
	UPDATE publications SET
	title = $2,
	content = $3,
	image_path = $4,
	pub_date = $5,
	layout_type = $6,
	author = $7,
	tags = $8,
	featured = $9,
	updated_at = now()
	WHERE id = $1
	RETURNING` + publicationColumns + `;`

	err := s.db.Get(&p, query, id,
		draft.Title,
		draft.Content,
		draft.ImagePath,
		draft.Date,
		draft.LayoutType,
		draft.Author,
		pq.Array(draft.Tags),
		draft.Featured,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Publication{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update publication")
	}
	return p, err
}

func (s *pgStore) DeletePublication(id int) error {
	if _, err := s.db.Exec(`DELETE FROM publications WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete publication")
		return err
	}
	return nil
}
