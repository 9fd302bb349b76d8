package models

// Profile holds the stats assembled for a post author. Followers, Following
// and Bio are pointers because any extraction strategy may fail to produce
// them; a nil field serialises as JSON null, matching what consumers expect
// from a best-effort scrape.
type Profile struct {
	Username   string  `json:"username"`
	Followers  *int    `json:"followers"`
	Following  *int    `json:"following"`
	Bio        *string `json:"bio"`
	ProfileURL string  `json:"profileUrl"`
}

// PostData is the subset of graph media fields carried into the envelope.
type PostData struct {
	MediaID   string `json:"media_id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
}

// AuthorData carries the extraction result for one post. Username is nil
// when no author could be resolved; ExtractionError is nil on success.
type AuthorData struct {
	Username        *string  `json:"username"`
	Profile         *Profile `json:"profile"`
	ExtractionError *string  `json:"extraction_error"`
}

// PostEnvelope is emitted once per post as a post_processed event.
// It is immutable after emission; the server keeps no reference to it.
type PostEnvelope struct {
	PostData    PostData   `json:"post_data"`
	AuthorData  AuthorData `json:"author_data"`
	Index       int        `json:"index"`
	ProcessedAt string     `json:"processed_at"`
}
