package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clipsight/clipsight/internal/models"
)

var ErrAssetNotFound = errors.New("video not found")

// AssetRepository is the media asset directory: per-video frame rate and
// display geometry, read by the selection engine, written at ingest time.
type AssetRepository struct {
	db *DB
}

func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) InsertAsset(asset *models.VideoAsset) error {
	query := `INSERT INTO videos (id, title, filename, content_type, size, fps, display_width, display_height, duration, upload_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.conn.Exec(query,
		asset.ID, asset.Title, asset.Filename, asset.ContentType, asset.Size,
		asset.FPS, asset.DisplayWidth, asset.DisplayHeight, asset.Duration, asset.UploadTime)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *AssetRepository) GetAssetByID(id string) (*models.VideoAsset, error) {
	query := `SELECT id, title, filename, content_type, size, fps, display_width, display_height, duration, upload_time
		FROM videos WHERE id = ?`

	var asset models.VideoAsset
	err := r.db.conn.QueryRow(query, id).Scan(
		&asset.ID, &asset.Title, &asset.Filename, &asset.ContentType, &asset.Size,
		&asset.FPS, &asset.DisplayWidth, &asset.DisplayHeight, &asset.Duration, &asset.UploadTime)
	if err == sql.ErrNoRows {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &asset, nil
}

func (r *AssetRepository) ListAssets() ([]models.VideoAsset, error) {
	query := `SELECT id, title, filename, content_type, size, fps, display_width, display_height, duration, upload_time
		FROM videos ORDER BY upload_time DESC`

	rows, err := r.db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var assets []models.VideoAsset
	for rows.Next() {
		var asset models.VideoAsset
		if err := rows.Scan(
			&asset.ID, &asset.Title, &asset.Filename, &asset.ContentType, &asset.Size,
			&asset.FPS, &asset.DisplayWidth, &asset.DisplayHeight, &asset.Duration, &asset.UploadTime); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// UpdateProbe stores the probed frame rate, display geometry and duration
// for an already ingested video.
func (r *AssetRepository) UpdateProbe(id string, fps float64, width, height int, duration float64) error {
	result, err := r.db.conn.Exec(
		`UPDATE videos SET fps = ?, display_width = ?, display_height = ?, duration = ? WHERE id = ?`,
		fps, width, height, duration, id)
	if err != nil {
		return fmt.Errorf("failed to update video probe data: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) DeleteAsset(id string) error {
	result, err := r.db.conn.Exec(`DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}
	return nil
}
