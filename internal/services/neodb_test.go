package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/hollowlog/yearshelf/internal/models"
)

func shelfRecord(id, created string) models.CategoryRecord {
	return models.CategoryRecord{
		Item: models.Item{
			ID:            id,
			DisplayTitle:  "Title " + id,
			CoverImageURL: "https://neodb.social/m/item/" + id + ".jpg",
		},
		CreatedTime: created,
	}
}

// shelfFixture serves canned pages per upstream category and counts hits.
type shelfFixture struct {
	mu    sync.Mutex
	pages map[string][]shelfPage // category -> pages (1-based)
	hits  map[string]int         // "category/page" -> count
	auth  string
}

func newShelfFixture() *shelfFixture {
	return &shelfFixture{
		pages: make(map[string][]shelfPage),
		hits:  make(map[string]int),
	}
}

func (f *shelfFixture) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.auth = r.Header.Get("Authorization")

		category := r.URL.Query().Get("category")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		f.hits[category+"/"+strconv.Itoa(page)]++

		pages := f.pages[category]
		if page < 1 || page > len(pages) {
			http.Error(w, "no such page", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(pages[page-1])
	}
}

func (f *shelfFixture) service(t *testing.T, url string) *NeoDBService {
	t.Helper()
	svc, err := NewNeoDBService(url+"/", "test-token", 1000)
	if err != nil {
		t.Fatalf("NewNeoDBService() error = %v", err)
	}
	return svc
}

func (f *shelfFixture) hitCount(category string, page int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[category+"/"+strconv.Itoa(page)]
}

func TestNewNeoDBService(t *testing.T) {
	t.Run("Requires Token", func(t *testing.T) {
		if _, err := NewNeoDBService("", "", 0); err == nil {
			t.Error("expected error when access token missing")
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		svc, err := NewNeoDBService("", "tok", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if svc.baseURL != defaultNeoDBBaseURL {
			t.Errorf("baseURL = %q", svc.baseURL)
		}
	})
}

func TestFetchCategory(t *testing.T) {
	t.Run("Single Page Filters To Year Window", func(t *testing.T) {
		fixture := newShelfFixture()
		fixture.pages["book"] = []shelfPage{{
			Data: []models.CategoryRecord{
				shelfRecord("b1", "2024-01-02T00:00:00Z"), // next year, excluded
				shelfRecord("b2", "2023-11-05T00:00:00Z"),
				shelfRecord("b3", "2023-01-01T00:00:00Z"),
				shelfRecord("b4", "2022-12-31T23:59:59Z"), // prior year, excluded
			},
			Page: 1, Pages: 1, Count: 4,
		}}

		srv := httptest.NewServer(fixture.handler(t))
		defer srv.Close()

		records, err := fixture.service(t, srv.URL).FetchCategory(context.Background(), models.CategoryBook, 2023)
		if err != nil {
			t.Fatalf("FetchCategory() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].Item.ID != "b2" || records[1].Item.ID != "b3" {
			t.Errorf("records = %v", records)
		}
		if fixture.auth != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", fixture.auth)
		}
	})

	t.Run("Pagination Stops Early Past Year Start", func(t *testing.T) {
		fixture := newShelfFixture()
		fixture.pages["game"] = []shelfPage{
			{Data: []models.CategoryRecord{
				shelfRecord("g1", "2023-12-01T00:00:00Z"),
				shelfRecord("g2", "2023-06-01T00:00:00Z"),
			}, Page: 1, Pages: 4, Count: 8},
			{Data: []models.CategoryRecord{
				shelfRecord("g3", "2023-02-01T00:00:00Z"),
				shelfRecord("g4", "2022-11-01T00:00:00Z"), // walked past Jan 1
			}, Page: 2, Pages: 4, Count: 8},
			{Data: []models.CategoryRecord{
				shelfRecord("g5", "2022-05-01T00:00:00Z"),
			}, Page: 3, Pages: 4, Count: 8},
			{Data: []models.CategoryRecord{
				shelfRecord("g6", "2021-05-01T00:00:00Z"),
			}, Page: 4, Pages: 4, Count: 8},
		}

		srv := httptest.NewServer(fixture.handler(t))
		defer srv.Close()

		records, err := fixture.service(t, srv.URL).FetchCategory(context.Background(), models.CategoryGame, 2023)
		if err != nil {
			t.Fatalf("FetchCategory() error = %v", err)
		}
		if len(records) != 3 {
			t.Errorf("got %d records, want 3 (g1..g3)", len(records))
		}

		// Pages 3 and 4 hold only older years and must never be requested.
		if fixture.hitCount("game", 3) != 0 || fixture.hitCount("game", 4) != 0 {
			t.Error("pagination continued past the target year boundary")
		}
	})

	t.Run("Screen Merges Movie And TV Newest First", func(t *testing.T) {
		fixture := newShelfFixture()
		fixture.pages["movie"] = []shelfPage{{
			Data: []models.CategoryRecord{
				shelfRecord("m1", "2023-08-01T00:00:00Z"),
				shelfRecord("m2", "2023-03-01T00:00:00Z"),
			}, Page: 1, Pages: 1, Count: 2,
		}}
		fixture.pages["tv"] = []shelfPage{{
			Data: []models.CategoryRecord{
				shelfRecord("t1", "2023-09-01T00:00:00Z"),
				shelfRecord("t2", "2023-05-01T00:00:00Z"),
			}, Page: 1, Pages: 1, Count: 2,
		}}

		srv := httptest.NewServer(fixture.handler(t))
		defer srv.Close()

		records, err := fixture.service(t, srv.URL).FetchCategory(context.Background(), models.CategoryScreen, 2023)
		if err != nil {
			t.Fatalf("FetchCategory() error = %v", err)
		}

		want := []string{"t1", "m1", "t2", "m2"}
		if len(records) != len(want) {
			t.Fatalf("got %d records, want %d", len(records), len(want))
		}
		for i, id := range want {
			if records[i].Item.ID != id {
				t.Errorf("records[%d] = %q, want %q", i, records[i].Item.ID, id)
			}
		}
	})

	t.Run("Screen Fails When Either Upstream Fails", func(t *testing.T) {
		fixture := newShelfFixture()
		fixture.pages["movie"] = []shelfPage{{
			Data: []models.CategoryRecord{shelfRecord("m1", "2023-08-01T00:00:00Z")},
			Page: 1, Pages: 1, Count: 1,
		}}
		// No tv pages -> 404 from the fixture.

		srv := httptest.NewServer(fixture.handler(t))
		defer srv.Close()

		if _, err := fixture.service(t, srv.URL).FetchCategory(context.Background(), models.CategoryScreen, 2023); err == nil {
			t.Error("expected error when one screen upstream fails")
		}
	})

	t.Run("Cover URLs Rewritten To Thumbnails", func(t *testing.T) {
		fixture := newShelfFixture()
		fixture.pages["music"] = []shelfPage{{
			Data: []models.CategoryRecord{shelfRecord("m1", "2023-08-01T00:00:00Z")},
			Page: 1, Pages: 1, Count: 1,
		}}

		srv := httptest.NewServer(fixture.handler(t))
		defer srv.Close()

		records, err := fixture.service(t, srv.URL).FetchCategory(context.Background(), models.CategoryMusic, 2023)
		if err != nil {
			t.Fatalf("FetchCategory() error = %v", err)
		}
		want := "https://neodb.social/m/item/m1.jpg" + jpgThumbnailSuffix
		if got := records[0].Item.CoverImageURL; got != want {
			t.Errorf("cover = %q, want %q", got, want)
		}
	})

	t.Run("Upstream Error Status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		svc, _ := NewNeoDBService(srv.URL+"/", "tok", 1000)
		if _, err := svc.FetchCategory(context.Background(), models.CategoryBook, 2023); err == nil {
			t.Error("expected error on non-2xx upstream status")
		}
	})
}

func TestThumbnailURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://x/cover.jpg", "https://x/cover.jpg" + jpgThumbnailSuffix},
		{"https://x/cover.png", "https://x/cover.png" + pngThumbnailSuffix},
		{"https://x/cover.webp", "https://x/cover.webp"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := thumbnailURL(tt.in); got != tt.want {
			t.Errorf("thumbnailURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
