package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashlens/hashlens/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWith(srv.URL, "17841400000000000", "test-token", srv.Client())
}

func TestSearchHashtag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ig_hashtag_search" {
			t.Errorf("path = %q, want /ig_hashtag_search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "sunset" {
			t.Errorf("q = %q, want sunset", q.Get("q"))
		}
		if q.Get("user_id") != "17841400000000000" {
			t.Errorf("user_id = %q", q.Get("user_id"))
		}
		if q.Get("access_token") != "test-token" {
			t.Errorf("access_token = %q", q.Get("access_token"))
		}
		w.Write([]byte(`{"data":[{"id":"17843857450040591"}]}`))
	})

	id, err := c.SearchHashtag(context.Background(), "sunset")
	if err != nil {
		t.Fatalf("SearchHashtag returned error: %v", err)
	}
	if id != "17843857450040591" {
		t.Errorf("id = %q, want 17843857450040591", id)
	}
}

func TestSearchHashtag_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	id, err := c.SearchHashtag(context.Background(), "nosuchtag")
	if err != nil {
		t.Fatalf("missing hashtag should not be an error, got %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty", id)
	}
}

func TestSearchHashtag_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	})

	_, err := c.SearchHashtag(context.Background(), "sunset")
	if err == nil {
		t.Fatal("expected error for HTTP 400")
	}
	var se *models.ScrapeError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not a ScrapeError", err)
	}
	if se.Code != models.ErrCodeUpstream {
		t.Errorf("code = %q, want %q", se.Code, models.ErrCodeUpstream)
	}
}

func TestRecentMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/17843857450040591/recent_media" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Errorf("limit = %q, want 3", got)
		}
		w.Write([]byte(`{"data":[
			{"id":"1","caption":"first","media_type":"IMAGE","permalink":"https://www.instagram.com/p/AAA/","timestamp":"2026-08-30T10:00:00+0000"},
			{"id":"2","caption":"second","media_type":"VIDEO","permalink":"https://www.instagram.com/p/BBB/","timestamp":"2026-08-30T11:00:00+0000"}
		]}`))
	})

	media, err := c.RecentMedia(context.Background(), "17843857450040591", 3)
	if err != nil {
		t.Fatalf("RecentMedia returned error: %v", err)
	}
	if len(media) != 2 {
		t.Fatalf("len(media) = %d, want 2", len(media))
	}
	if media[0].ID != "1" || media[0].Permalink != "https://www.instagram.com/p/AAA/" {
		t.Errorf("media[0] = %+v", media[0])
	}
	if media[1].MediaType != "VIDEO" {
		t.Errorf("media[1].MediaType = %q, want VIDEO", media[1].MediaType)
	}
}

func TestRecentMedia_EmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	media, err := c.RecentMedia(context.Background(), "123", 10)
	if err != nil {
		t.Fatalf("RecentMedia returned error: %v", err)
	}
	if len(media) != 0 {
		t.Errorf("len(media) = %d, want 0", len(media))
	}
}

func TestAccountInfo(t *testing.T) {
	raw := `{"id":"17841400000000000","username":"acme","followers_count":1024,"follows_count":99,"media_count":250}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/17841400000000000" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != accountFields {
			t.Errorf("fields = %q, want %q", got, accountFields)
		}
		w.Write([]byte(raw))
	})

	body, err := c.AccountInfo(context.Background())
	if err != nil {
		t.Fatalf("AccountInfo returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("account info is not valid JSON: %v", err)
	}
	if decoded["username"] != "acme" {
		t.Errorf("username = %v, want acme", decoded["username"])
	}
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	c := NewClientWith("http://example.test/v19.0/", "id", "tok", http.DefaultClient)
	if c.baseURL != "http://example.test/v19.0" {
		t.Errorf("baseURL = %q, want trailing slash removed", c.baseURL)
	}
}
