// Package repositories implements SQLite persistence for cached backend credentials.
//
// Key Implementations:
//   - [KeyRepository] : CRUD over the api_keys table, one row per service
//   - [KeyCacheAdapter] : adapts KeyRepository to the services.KeyStore interface
//
// Only credentials are stored. Search results are built per call and never persisted.
package repositories
