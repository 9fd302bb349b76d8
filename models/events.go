package models

// SSE event names emitted on the hashtag stream. Each data: payload is one
// JSON object of the matching *Event type below.
const (
	EventStatus        = "status"
	EventMetadata      = "metadata"
	EventProgress      = "progress"
	EventPostProcessed = "post_processed"
	EventComplete      = "complete"
	EventError         = "error"
)

// Pipeline stages reported in status events.
const (
	StageInit         = "initialization"
	StageHashtagFound = "hashtag_found"
	StagePostsFound   = "posts_found"
)

// StatusEvent reports a coarse pipeline stage transition.
type StatusEvent struct {
	Message    string `json:"message"`
	Stage      string `json:"stage"`
	Progress   int    `json:"progress"`
	TotalPosts int    `json:"total_posts,omitempty"`
}

// MetadataEvent describes the stream before per-post processing starts.
type MetadataEvent struct {
	Hashtag      string `json:"hashtag"`
	TotalPosts   int    `json:"total_posts"`
	ProcessedAt  string `json:"processed_at"`
	HeadlessMode bool   `json:"headless_mode"`
	TimeoutMs    int    `json:"timeout_ms"`
}

// ProgressEvent is emitted before each post is processed.
type ProgressEvent struct {
	Current        int    `json:"current"`
	Total          int    `json:"total"`
	Percentage     int    `json:"percentage"`
	ProcessingPost string `json:"processing_post"`
	Message        string `json:"message"`
}

// CompleteEvent is the terminal summary after all posts were processed.
type CompleteEvent struct {
	Success             bool   `json:"success"`
	Hashtag             string `json:"hashtag"`
	TotalPostsProcessed int    `json:"total_posts_processed"`
	CompletedAt         string `json:"completed_at"`
	Message             string `json:"message"`
}

// EmptyResultEvent is the terminal payload when the hashtag resolved but
// returned no recent media. This is a success, not an error.
type EmptyResultEvent struct {
	Hashtag string         `json:"hashtag"`
	Posts   []PostEnvelope `json:"posts"`
	Message string         `json:"message"`
}

// ErrorEvent is the terminal payload for the absorbing error state.
type ErrorEvent struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Example any    `json:"example,omitempty"`
}
