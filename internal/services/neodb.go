// NeoDB implementation of [Service]
//
// Shelf API response types based on https://neodb.social/developer/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultNeoDBBaseURL = "https://neodb.social/"
	shelfCompletePath   = "api/me/shelf/complete"

	jpgThumbnailSuffix = ".200x200_q85_autocrop_crop-scale.jpg"
	pngThumbnailSuffix = ".200x200_q85_autocrop_crop-scale.png"
)

// upstreamCategory maps a gallery category to the category names the shelf
// API understands. "screen" is a gallery-side merge of movie and tv.
func upstreamCategories(category models.Category) []string {
	if category == models.CategoryScreen {
		return []string{"movie", "tv"}
	}
	return []string{string(category)}
}

// shelfPage is one page of the paginated shelf endpoint.
type shelfPage struct {
	Data  []models.CategoryRecord `json:"data"`
	Page  int                     `json:"page"`
	Pages int                     `json:"pages"`
	Count int                     `json:"count"`
}

// NeoDBService implements [Service] against a NeoDB-compatible shelf API.
//
// The shelf endpoint returns completed items newest-first across all years,
// so the client paginates only until it walks past January 1 of the target
// year, then filters the collected records down to the year's window.
type NeoDBService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNeoDBService creates a shelf client authenticated with the given access
// token. Requests carry the token via [oauth2.NewClient]; page fetches are
// rate limited to pagesPerSecond (<= 0 selects a default of 5/s).
func NewNeoDBService(baseURL, accessToken string, pagesPerSecond float64) (*NeoDBService, error) {
	if accessToken == "" {
		return nil, shared.ErrMissingToken
	}
	if baseURL == "" {
		baseURL = defaultNeoDBBaseURL
	}
	if pagesPerSecond <= 0 {
		pagesPerSecond = 5.0
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	return &NeoDBService{
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(context.Background(), source),
		limiter:    rate.NewLimiter(rate.Limit(pagesPerSecond), 1),
	}, nil
}

func (s *NeoDBService) Name() string {
	return "NeoDB"
}

// FetchCategory retrieves the records completed in year, newest first.
//
// For "screen" the movie and tv shelves are fetched concurrently and merged,
// mirroring how the gallery presents them as a single section.
func (s *NeoDBService) FetchCategory(ctx context.Context, category models.Category, year int) ([]models.CategoryRecord, error) {
	upstream := upstreamCategories(category)
	if len(upstream) == 1 {
		return s.fetchUpstreamCategory(ctx, upstream[0], year)
	}

	type result struct {
		records []models.CategoryRecord
		err     error
	}

	results := make(chan result, len(upstream))
	for _, uc := range upstream {
		go func(uc string) {
			records, err := s.fetchUpstreamCategory(ctx, uc, year)
			results <- result{records: records, err: err}
		}(uc)
	}

	var merged []models.CategoryRecord
	for range upstream {
		r := <-results
		if r.err != nil {
			return nil, r.err
		}
		merged = append(merged, r.records...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedTime > merged[j].CreatedTime
	})

	return merged, nil
}

// fetchUpstreamCategory pages through one shelf category, stopping early
// once a page's last item predates January 1 of the target year.
func (s *NeoDBService) fetchUpstreamCategory(ctx context.Context, category string, year int) ([]models.CategoryRecord, error) {
	start := yearStart(year)
	end := yearEnd(year)

	page := 1
	first, err := s.fetchShelfPage(ctx, category, page)
	if err != nil {
		return nil, err
	}

	collected := first.Data
	done := len(first.Data) == 0 ||
		first.Count == len(first.Data) ||
		first.Pages <= 1 ||
		olderThan(first.Data[len(first.Data)-1], start)

	for !done && page < first.Pages {
		page++
		next, err := s.fetchShelfPage(ctx, category, page)
		if err != nil {
			return nil, err
		}
		collected = append(collected, next.Data...)
		done = page == first.Pages ||
			len(next.Data) == 0 ||
			olderThan(collected[len(collected)-1], start)
	}

	return filterWindow(collected, start, end), nil
}

// fetchShelfPage requests a single page of the completed shelf.
func (s *NeoDBService) fetchShelfPage(ctx context.Context, category string, page int) (*shelfPage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := s.baseURL + shelfCompletePath
	params := url.Values{}
	params.Set("category", category)
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: shelf API status %d", shared.ErrUpstream, resp.StatusCode)
	}

	var result shelfPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}

	for i := range result.Data {
		result.Data[i].Item.CoverImageURL = thumbnailURL(result.Data[i].Item.CoverImageURL)
	}

	return &result, nil
}

// thumbnailURL rewrites a full-size cover URL to its 200x200 thumbnail.
func thumbnailURL(coverURL string) string {
	switch {
	case strings.HasSuffix(coverURL, ".jpg"):
		return coverURL + jpgThumbnailSuffix
	case strings.HasSuffix(coverURL, ".png"):
		return coverURL + pngThumbnailSuffix
	default:
		return coverURL
	}
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func yearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
}

// olderThan reports whether a record was completed before the cutoff.
// Records with unparseable timestamps are treated as out of window.
func olderThan(record models.CategoryRecord, cutoff time.Time) bool {
	created, err := record.CreatedAt()
	if err != nil {
		return true
	}
	return created.Before(cutoff)
}

// filterWindow keeps records completed within [start, end].
func filterWindow(records []models.CategoryRecord, start, end time.Time) []models.CategoryRecord {
	filtered := make([]models.CategoryRecord, 0, len(records))
	for _, record := range records {
		created, err := record.CreatedAt()
		if err != nil {
			continue
		}
		if !created.Before(start) && !created.After(end) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
