// Package repo provides stores over the cache database.
package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/models"

	"github.com/Masterminds/squirrel"
)

// MediaInfoStore holds a pointer to the sql.DB.
type MediaInfoStore struct {
	DB *sql.DB
}

// GetMediaInfoStore returns a media info store instance with injected database.
func GetMediaInfoStore(db *sql.DB) *MediaInfoStore {
	return &MediaInfoStore{
		DB: db,
	}
}

// GetInfo fetches cached probe data for path. The second return is false
// when no row exists.
func (ms *MediaInfoStore) GetInfo(path string) (*models.MediaInfo, bool, error) {
	query := squirrel.Select(
		consts.QInfoPath,
		consts.QInfoSize,
		consts.QInfoModTime,
		consts.QInfoDuration,
		consts.QInfoWidth,
		consts.QInfoHeight,
		consts.QInfoVCodec,
		consts.QInfoCreatedAt,
		consts.QInfoProbedAt,
	).
		From(consts.DBMediaInfo).
		Where(squirrel.Eq{consts.QInfoPath: path}).
		RunWith(ms.DB)

	var (
		m         models.MediaInfo
		codec     sql.NullString
		createdAt sql.NullTime
	)
	if err := query.QueryRow().Scan(
		&m.Path,
		&m.Size,
		&m.ModTime,
		&m.Duration,
		&m.Width,
		&m.Height,
		&codec,
		&createdAt,
		&m.ProbedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to query media info for %q: %w", path, err)
	}

	m.VideoCodec = codec.String
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	}
	return &m, true, nil
}

// SaveInfo inserts or replaces the cached probe data for info.Path.
func (ms *MediaInfoStore) SaveInfo(info *models.MediaInfo) error {
	if info.Path == "" {
		return errors.New("media info must have a path")
	}
	if info.ProbedAt.IsZero() {
		info.ProbedAt = time.Now()
	}

	query := squirrel.Insert(consts.DBMediaInfo).
		Options("OR REPLACE").
		Columns(
			consts.QInfoPath,
			consts.QInfoSize,
			consts.QInfoModTime,
			consts.QInfoDuration,
			consts.QInfoWidth,
			consts.QInfoHeight,
			consts.QInfoVCodec,
			consts.QInfoCreatedAt,
			consts.QInfoProbedAt,
		).
		Values(
			info.Path,
			info.Size,
			info.ModTime,
			info.Duration,
			info.Width,
			info.Height,
			info.VideoCodec,
			sql.NullTime{Time: info.CreatedAt, Valid: !info.CreatedAt.IsZero()},
			info.ProbedAt,
		).
		RunWith(ms.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to save media info for %q: %w", info.Path, err)
	}
	return nil
}

// DeleteInfo removes the cached row for path, if any.
func (ms *MediaInfoStore) DeleteInfo(path string) error {
	query := squirrel.Delete(consts.DBMediaInfo).
		Where(squirrel.Eq{consts.QInfoPath: path}).
		RunWith(ms.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to delete media info for %q: %w", path, err)
	}
	return nil
}

// PruneOlderThan removes rows whose probe time predates cutoff, returning
// how many were removed. Keeps the cache from accumulating rows for files
// that were probed once and never seen again.
func (ms *MediaInfoStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	query := squirrel.Delete(consts.DBMediaInfo).
		Where(squirrel.Lt{consts.QInfoProbedAt: cutoff}).
		RunWith(ms.DB)

	res, err := query.Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to prune media info rows: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return n, nil
}
