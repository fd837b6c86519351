// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/services"
)

// MockService is a test double for [services.Service]
//
// Results are looked up by query text; SearchFunc, when set, wins.
type MockService struct {
	ID         string
	Results    map[string][]models.Candidate
	Err        error
	SearchFunc func(ctx context.Context, q models.SearchQuery) ([]models.Candidate, error)

	mu      sync.Mutex
	queries []models.SearchQuery
}

func (m *MockService) Search(ctx context.Context, q models.SearchQuery) ([]models.Candidate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results[q.Text()], nil
}

func (m *MockService) Meta() services.Meta {
	id := m.ID
	if id == "" {
		id = "mock"
	}
	return services.Meta{ID: id, Desc: id}
}

func (m *MockService) Name() string { return m.Meta().Desc }

// Queries returns the queries received so far.
func (m *MockService) Queries() []models.SearchQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SearchQuery(nil), m.queries...)
}

// MockFeeder is a test double for [services.Feeder] that counts calls.
type MockFeeder struct {
	Info  *models.FeedInfo
	Err   error
	calls atomic.Int32
}

func (m *MockFeeder) GetFeeds(ctx context.Context, id string, opts []string) (*models.FeedInfo, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Info != nil {
		return m.Info, nil
	}
	return &models.FeedInfo{ID: id}, nil
}

// Calls returns how many times GetFeeds ran.
func (m *MockFeeder) Calls() int { return int(m.calls.Load()) }

// Candidate builds a candidate from source with a feed resolver backed by feeder.
func Candidate(source, videoID, title string, accuracy float64, feeder services.Feeder) models.Candidate {
	return models.Candidate{
		Source:     source,
		Kind:       models.KindSong,
		Type:       models.KindSong.String(),
		Title:      title,
		Duration:   "3:20",
		DurationMS: 200000,
		VideoID:    videoID,
		Accuracy:   accuracy,
		GetFeeds:   services.NewFeedResolver(feeder, videoID),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
