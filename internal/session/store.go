package session

import (
	"context"
	"database/sql"

	"github.com/emart/inventory/internal/store"
)

// SettingsStore persists session state in the settings table.
type SettingsStore struct {
	DB *sql.DB
}

func (s SettingsStore) Get(ctx context.Context, key string) (string, error) {
	return store.GetSetting(ctx, s.DB, key)
}

func (s SettingsStore) Set(ctx context.Context, key, value string) error {
	return store.SetSetting(ctx, s.DB, key, value)
}

func (s SettingsStore) Delete(ctx context.Context, key string) error {
	return store.DeleteSetting(ctx, s.DB, key)
}
