package repository

import (
	"database/sql"

	"vocaday/internal/database"
)

// SettingsRepository is the key-value persistence port. Per-user values are
// stored under namespaced keys ("nickname:<user-id>").
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key. A missing key returns ""
// and no error.
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := r.db.Dialect.SelectSetting()
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSetting()
	_, err := r.db.Exec(query, key, value)
	return err
}

// GetNickname returns the stored nickname for a user, empty when unset
func (r *SettingsRepository) GetNickname(userID string) (string, error) {
	return r.GetSetting("nickname:" + userID)
}

// SetNickname stores the nickname for a user
func (r *SettingsRepository) SetNickname(userID, nickname string) error {
	return r.SetSetting("nickname:"+userID, nickname)
}
