package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
)

// KeyRepository implements models.Repository[*models.APIKey] for cached backend credentials.
//
// There is at most one key per service.
type KeyRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.APIKey] = (*KeyRepository)(nil)

// NewKeyRepository creates a new KeyRepository with the given database connection
func NewKeyRepository(db *sql.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// Create inserts a new [models.APIKey] with a generated ID
func (r *KeyRepository) Create(key *models.APIKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO api_keys (id, service, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, id, key.Service(), key.Value(), key.CreatedAt(), key.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert api key: %w", err)
	}

	key.SetID(id)
	return nil
}

// Get retrieves a key by ID
func (r *KeyRepository) Get(id string) (*models.APIKey, error) {
	query := `SELECT id, service, value, created_at, updated_at FROM api_keys WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByService retrieves the key stored for service. Returns [shared.ErrKeyNotCached] when there is none.
func (r *KeyRepository) GetByService(service string) (*models.APIKey, error) {
	query := `SELECT id, service, value, created_at, updated_at FROM api_keys WHERE service = ?`
	key, err := r.scanOne(r.db.QueryRow(query, service))
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrKeyNotCached, service)
	}
	return key, err
}

// Update replaces the value of an existing key and bumps its updated_at
func (r *KeyRepository) Update(key *models.APIKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	result, err := r.db.Exec(`UPDATE api_keys SET value = ?, updated_at = ? WHERE id = ?`, key.Value(), now, key.ID())
	if err != nil {
		return fmt.Errorf("failed to update api key: %w", err)
	}
	if err := checkAffected(result, "api key", key.ID()); err != nil {
		return err
	}

	key.SetUpdatedAt(now)
	return nil
}

// Delete removes a key by ID
func (r *KeyRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM api_keys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}
	return checkAffected(result, "api key", id)
}

// List returns every stored key ordered by service
func (r *KeyRepository) List() ([]*models.APIKey, error) {
	rows, err := r.db.Query(`SELECT id, service, value, created_at, updated_at FROM api_keys ORDER BY service ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		key, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api keys: %w", err)
	}
	return keys, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *KeyRepository) scanOne(row scanner) (*models.APIKey, error) {
	var (
		id, service, value   string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &service, &value, &createdAt, &updatedAt); err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}
	return models.LoadAPIKey(id, service, value, createdAt, updatedAt), nil
}
