package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/shared"
	"github.com/hollowlog/yearshelf/internal/years"
)

type stubService struct {
	records []models.CategoryRecord
	err     error
	gotYear int
	gotCat  models.Category
}

func (s *stubService) FetchCategory(ctx context.Context, category models.Category, year int) ([]models.CategoryRecord, error) {
	s.gotCat = category
	s.gotYear = year
	return s.records, s.err
}

func (s *stubService) Name() string { return "stub" }

func testRouter(svc *stubService) *BasicRouter {
	rng := years.NewRange(0, func() time.Time {
		return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	})
	return NewProxyRouter(svc, rng, shared.NewLogger(io.Discard))
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCompleteHandler(t *testing.T) {
	t.Run("Liveness", func(t *testing.T) {
		rec := get(t, testRouter(&stubService{}), "/api/")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if body := rec.Body.String(); body != "Alive!" {
			t.Errorf("body = %q, want %q", body, "Alive!")
		}
	})

	t.Run("Category And Year Forwarded", func(t *testing.T) {
		svc := &stubService{records: []models.CategoryRecord{{
			Item:        models.Item{ID: "b1", DisplayTitle: "Piranesi"},
			CreatedTime: "2023-02-01T00:00:00Z",
		}}}
		rec := get(t, testRouter(svc), "/api/complete/book/2023")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if svc.gotCat != models.CategoryBook || svc.gotYear != 2023 {
			t.Errorf("service called with (%s, %d)", svc.gotCat, svc.gotYear)
		}

		var payload struct {
			Data []models.CategoryRecord `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(payload.Data) != 1 || payload.Data[0].Item.ID != "b1" {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("Missing Year Defaults To Current", func(t *testing.T) {
		svc := &stubService{}
		rec := get(t, testRouter(svc), "/api/complete/music")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if svc.gotYear != 2024 {
			t.Errorf("year = %d, want current year 2024", svc.gotYear)
		}
	})

	t.Run("Invalid Category", func(t *testing.T) {
		rec := get(t, testRouter(&stubService{}), "/api/complete/podcast/2023")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Invalid Year", func(t *testing.T) {
		rec := get(t, testRouter(&stubService{}), "/api/complete/book/twenty")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Upstream Failure Is Generic", func(t *testing.T) {
		svc := &stubService{err: errors.New("401 Unauthorized: token expired for user xyz")}
		rec := get(t, testRouter(svc), "/api/complete/game/2023")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d, want 502", rec.Code)
		}
		body := rec.Body.String()
		if strings.Contains(body, "401") || strings.Contains(body, "token") {
			t.Errorf("raw upstream error leaked to the client: %q", body)
		}
	})

	t.Run("Empty Result Is An Empty Array", func(t *testing.T) {
		rec := get(t, testRouter(&stubService{}), "/api/complete/book/2023")
		if !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Errorf("body = %q, want empty data array", rec.Body.String())
		}
	})

	t.Run("CORS Headers Present", func(t *testing.T) {
		rec := get(t, testRouter(&stubService{}), "/api/complete/book/2023")
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("Write Methods Rejected", func(t *testing.T) {
		svc := &stubService{}
		router := testRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/complete/book/2023", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
		if svc.gotCat != "" {
			t.Error("POST reached the shelf provider")
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Middleware Wraps In Registration Order", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(tag("outer"), tag("inner"))
		router.Handler(NewCompleteHandler(&stubService{}, years.NewRange(0, nil), shared.NewLogger(io.Discard)))

		get(t, router, "/api/")

		if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
			t.Errorf("middleware order = %v, want [outer inner]", order)
		}
	})

	t.Run("Handler Registers Every Route", func(t *testing.T) {
		router := testRouter(&stubService{})
		for _, path := range []string{"/api/", "/api/complete/book/2023"} {
			if rec := get(t, router, path); rec.Code != http.StatusOK {
				t.Errorf("GET %s status = %d, want 200", path, rec.Code)
			}
		}
	})
}
