package models

import (
	"encoding/json"
	"testing"
)

func TestStreamRequestDefaults(t *testing.T) {
	var r StreamRequest
	r.Defaults()
	if r.Headless == nil || !*r.Headless {
		t.Error("headless should default to true")
	}
	if r.TimeoutMs != 120000 {
		t.Errorf("timeoutMs = %d, want 120000", r.TimeoutMs)
	}
	if r.Limit != 10 {
		t.Errorf("limit = %d, want 10", r.Limit)
	}
}

func TestStreamRequestDefaultsKeepExplicitValues(t *testing.T) {
	f := false
	r := StreamRequest{Headless: &f, TimeoutMs: 30000, Limit: 5}
	r.Defaults()
	if *r.Headless {
		t.Error("explicit headless=false was overwritten")
	}
	if r.TimeoutMs != 30000 || r.Limit != 5 {
		t.Errorf("explicit values overwritten: %+v", r)
	}
}

func TestProfileNilFieldsSerializeAsNull(t *testing.T) {
	p := Profile{Username: "nike", ProfileURL: "https://www.instagram.com/nike/"}
	body, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"followers", "following", "bio"} {
		v, present := decoded[field]
		if !present {
			t.Errorf("%s missing from JSON, want explicit null", field)
		} else if v != nil {
			t.Errorf("%s = %v, want null", field, v)
		}
	}
}
