package models

// StreamRequest is the payload for POST /api/v1/hashtag-stream.
type StreamRequest struct {
	// Hashtag is the hashtag name to search, without the leading '#'. Required.
	Hashtag string `json:"hashtag"`

	// Cookies are Instagram session cookies forwarded to the browser so
	// profile pages render as a logged-in user. Optional.
	Cookies []Cookie `json:"cookies,omitempty"`

	// Headless controls whether the per-post browser runs headless.
	// Default: true.
	Headless *bool `json:"headless,omitempty"`

	// TimeoutMs is the budget in milliseconds for each post's
	// author+profile extraction. Default: 120000.
	TimeoutMs int `json:"timeoutMs,omitempty"`

	// Limit is the maximum number of recent media items to process.
	// Default: 10.
	Limit int `json:"limit,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *StreamRequest) Defaults() {
	if r.Headless == nil {
		t := true
		r.Headless = &t
	}
	if r.TimeoutMs <= 0 {
		r.TimeoutMs = 120000
	}
	if r.Limit <= 0 {
		r.Limit = 10
	}
}

// Cookie is a browser cookie supplied by the caller. Domain and Path are
// optional; the session layer defaults them before applying.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ExampleStreamRequest is echoed back in the error event when the hashtag
// is missing, so API consumers can see the expected shape.
func ExampleStreamRequest() StreamRequest {
	t := true
	return StreamRequest{
		Hashtag: "travel",
		Cookies: []Cookie{
			{Name: "sessionid", Value: "your_session_id", Domain: ".instagram.com"},
		},
		Headless:  &t,
		TimeoutMs: 120000,
		Limit:     10,
	}
}
