// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/hollowlog/yearshelf/internal/models"
)

// MockService is a test double for [services.Service].
//
// Records and Errs are keyed by category; unconfigured categories return an
// empty slice. Calls counts FetchCategory invocations per category.
type MockService struct {
	Records map[models.Category][]models.CategoryRecord
	Errs    map[models.Category]error
	Calls   map[models.Category]int
}

func NewMockService() *MockService {
	return &MockService{
		Records: make(map[models.Category][]models.CategoryRecord),
		Errs:    make(map[models.Category]error),
		Calls:   make(map[models.Category]int),
	}
}

func (m *MockService) FetchCategory(ctx context.Context, category models.Category, year int) ([]models.CategoryRecord, error) {
	m.Calls[category]++
	if err := m.Errs[category]; err != nil {
		return nil, err
	}
	if records, ok := m.Records[category]; ok {
		return records, nil
	}
	return []models.CategoryRecord{}, nil
}

func (m *MockService) Name() string { return "mock" }

// Record builds a minimal record with the given ID and completion time.
func Record(id, created string) models.CategoryRecord {
	return models.CategoryRecord{
		Item:        models.Item{ID: id, DisplayTitle: "Title " + id},
		CreatedTime: created,
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
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
