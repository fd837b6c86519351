package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
)

// KeyCacheAdapter implements services.KeyStore using KeyRepository.
//
// Saving a key for a service that already has one overwrites it.
type KeyCacheAdapter struct {
	repo *KeyRepository
}

// NewKeyCacheAdapter creates a new KeyCacheAdapter with the given repository
func NewKeyCacheAdapter(repo *KeyRepository) *KeyCacheAdapter {
	return &KeyCacheAdapter{repo: repo}
}

// LoadKey returns the stored key for service and when it was written.
func (a *KeyCacheAdapter) LoadKey(service string) (string, time.Time, error) {
	key, err := a.repo.GetByService(service)
	if err != nil {
		return "", time.Time{}, err
	}
	return key.Value(), key.UpdatedAt(), nil
}

// SaveKey stores value for service, replacing any previous key.
func (a *KeyCacheAdapter) SaveKey(service, value string) error {
	existing, err := a.repo.GetByService(service)
	switch {
	case errors.Is(err, shared.ErrKeyNotCached):
		if err := a.repo.Create(models.NewAPIKey(service, value)); err != nil {
			return fmt.Errorf("failed to cache key: %w", err)
		}
		return nil
	case err != nil:
		return err
	}

	existing.SetValue(value)
	if err := a.repo.Update(existing); err != nil {
		return fmt.Errorf("failed to cache key: %w", err)
	}
	return nil
}

// Clear removes the stored key for service. A missing key is not an error.
func (a *KeyCacheAdapter) Clear(service string) error {
	existing, err := a.repo.GetByService(service)
	if errors.Is(err, shared.ErrKeyNotCached) {
		return nil
	}
	if err != nil {
		return err
	}
	return a.repo.Delete(existing.ID())
}
