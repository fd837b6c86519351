package models

import (
	"fmt"
	"strings"
	"time"
)

// APIKey is a backend credential scraped from a web page and cached between runs.
type APIKey struct {
	id        string
	service   string
	value     string
	createdAt time.Time
	updatedAt time.Time
}

var _ Model = (*APIKey)(nil)

// NewAPIKey creates an [APIKey] for service with the current time as creation time.
func NewAPIKey(service, value string) *APIKey {
	now := time.Now()
	return &APIKey{service: service, value: value, createdAt: now, updatedAt: now}
}

// LoadAPIKey rebuilds an [APIKey] from stored columns.
func LoadAPIKey(id, service, value string, createdAt, updatedAt time.Time) *APIKey {
	return &APIKey{id: id, service: service, value: value, createdAt: createdAt, updatedAt: updatedAt}
}

func (k *APIKey) ID() string           { return k.id }
func (k *APIKey) Service() string      { return k.service }
func (k *APIKey) Value() string        { return k.value }
func (k *APIKey) CreatedAt() time.Time { return k.createdAt }
func (k *APIKey) UpdatedAt() time.Time { return k.updatedAt }

func (k *APIKey) SetID(id string)          { k.id = id }
func (k *APIKey) SetValue(v string)        { k.value = v }
func (k *APIKey) SetUpdatedAt(t time.Time) { k.updatedAt = t }

// Age reports how long ago the key was last written.
func (k *APIKey) Age(now time.Time) time.Duration {
	return now.Sub(k.updatedAt)
}

// Validate checks that both service and value are present.
func (k *APIKey) Validate() error {
	if strings.TrimSpace(k.service) == "" {
		return fmt.Errorf("service is required")
	}
	if strings.TrimSpace(k.value) == "" {
		return fmt.Errorf("key value is required")
	}
	return nil
}
