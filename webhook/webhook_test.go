package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeliver(t *testing.T) {
	var gotBody []byte
	var gotSig, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get("X-Hashlens-Signature")
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	event := &Event{Type: "stream.completed", Hashtag: "sunset", Timestamp: 1756684800}
	if err := Deliver(context.Background(), srv.URL, "s3cret", event); err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded.Type != "stream.completed" || decoded.Hashtag != "sunset" {
		t.Errorf("decoded event = %+v", decoded)
	}
	if gotUA != "Hashlens-Webhook/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}
}

func TestDeliver_NoSecretSkipsSignature(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Hashlens-Signature")
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", &Event{Type: "stream.failed"}); err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}
	if gotSig != "" {
		t.Errorf("signature header present without a secret: %q", gotSig)
	}
}

func TestDeliver_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", &Event{Type: "stream.completed"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
