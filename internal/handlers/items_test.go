package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"lostfound/internal/models"
	"lostfound/internal/service"
)

func getWithCookies(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestDashboard(t *testing.T) {
	_, reg, r := newTestEnv()
	reg.mine = []models.Item{
		{ID: 1, Title: "Blue Backpack", Type: models.TypeLost, Location: "Library", UserID: 1, DateReported: time.Now().UTC()},
	}
	reg.recent = reg.mine
	reg.stats = models.Stats{Total: 3, Lost: 2, Found: 1, Resolved: 1, Mine: 3}

	cookies := logIn(t, r)
	w := getWithCookies(r, "/dashboard", cookies)

	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d, body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"Blue Backpack", "Total: 3", "Mine: 3", "Alice"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard body missing %q", want)
		}
	}
}

func TestAddItem(t *testing.T) {
	t.Run("success redirects to dashboard", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.createID = 5
		cookies := logIn(t, r)

		w := postForm(r, "/add_item", url.Values{
			"title":       {"Black Umbrella"},
			"type":        {"Found"},
			"location":    {"Cafeteria"},
			"description": {"Left by the entrance"},
		}, cookies)

		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Fatalf("status=%d location=%q, want 302 /dashboard", w.Code, w.Header().Get("Location"))
		}
		if reg.lastCreate.Title != "Black Umbrella" || reg.lastCreate.Type != models.TypeFound {
			t.Fatalf("unexpected create params: %+v", reg.lastCreate)
		}
		if reg.lastCreate.OwnerID != 1 {
			t.Fatalf("owner id = %d, want the session user", reg.lastCreate.OwnerID)
		}
	})

	t.Run("invalid input returns to form", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.createErr = service.ErrInvalidInput
		cookies := logIn(t, r)

		w := postForm(r, "/add_item", url.Values{"title": {""}}, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/add_item" {
			t.Fatalf("status=%d location=%q, want 302 /add_item", w.Code, w.Header().Get("Location"))
		}
	})
}

func TestItemDetail(t *testing.T) {
	t.Run("renders the item", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.item = &models.Item{
			ID: 9, Title: "Silver Watch", Type: models.TypeLost, Location: "Gym",
			Description: "Engraved", UserID: 1, DateReported: time.Now().UTC(),
		}
		cookies := logIn(t, r)

		w := getWithCookies(r, "/item/9", cookies)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Silver Watch") {
			t.Fatal("item page missing title")
		}
	})

	t.Run("unknown item is a 404", func(t *testing.T) {
		_, _, r := newTestEnv()
		cookies := logIn(t, r)

		w := getWithCookies(r, "/item/999", cookies)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, want 404", w.Code)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("ajax owner gets the new state as JSON", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.toggleResolved = true
		cookies := logIn(t, r)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/update_status/4", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp map[string]bool
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad JSON: %v", err)
		}
		if !resp["is_resolved"] {
			t.Fatalf("is_resolved=%v, want true", resp["is_resolved"])
		}
		if reg.lastToggleID != 4 || reg.lastRequesterID != 1 {
			t.Fatalf("toggle called with id=%d requester=%d", reg.lastToggleID, reg.lastRequesterID)
		}
	})

	t.Run("ajax non-owner gets 403 JSON", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.toggleErr = service.ErrForbidden
		cookies := logIn(t, r)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/update_status/4", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("status=%d, want 403", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Not allowed") {
			t.Fatalf("body=%s, want JSON error", w.Body.String())
		}
	})

	t.Run("plain form post redirects with a notice", func(t *testing.T) {
		_, _, r := newTestEnv()
		cookies := logIn(t, r)

		w := postForm(r, "/update_status/4", url.Values{}, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Fatalf("status=%d location=%q, want 302 /dashboard", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("plain non-owner redirects with a notice", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.toggleErr = service.ErrForbidden
		cookies := logIn(t, r)

		w := postForm(r, "/update_status/4", url.Values{}, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Fatalf("status=%d location=%q, want 302 /dashboard", w.Code, w.Header().Get("Location"))
		}
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("owner delete redirects to dashboard", func(t *testing.T) {
		_, reg, r := newTestEnv()
		cookies := logIn(t, r)

		w := postForm(r, "/delete_item/4", url.Values{}, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Fatalf("status=%d location=%q, want 302 /dashboard", w.Code, w.Header().Get("Location"))
		}
		if reg.deleteCalls != 1 {
			t.Fatalf("delete called %d times", reg.deleteCalls)
		}
	})

	t.Run("unknown item is a 404", func(t *testing.T) {
		_, reg, r := newTestEnv()
		reg.deleteErr = service.ErrNotFound
		cookies := logIn(t, r)

		w := postForm(r, "/delete_item/999", url.Values{}, cookies)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, want 404", w.Code)
		}
	})
}
