package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hashlens/hashlens/cache"
	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/graph"
	"github.com/hashlens/hashlens/models"
	"github.com/hashlens/hashlens/scraper"
	"github.com/hashlens/hashlens/webhook"
)

// activeStreams counts in-flight hashtag streams for the health endpoint.
var activeStreams atomic.Int32

// ActiveStreams returns the number of streams currently running.
func ActiveStreams() int {
	return int(activeStreams.Load())
}

// ProcessFunc runs the per-post extraction pipeline. Injected so the stream
// loop is testable without a browser.
type ProcessFunc func(ctx context.Context, postURL string, opts scraper.Options) scraper.Outcome

// StreamDeps bundles the collaborators of the hashtag stream endpoint.
type StreamDeps struct {
	Graph    *graph.Client
	Hashtags *cache.Cache
	Process  ProcessFunc
	Delay    time.Duration
	Webhook  config.WebhookConfig
}

// Stream returns the handler for POST /api/v1/hashtag-stream.
//
// The response is always text/event-stream, never a JSON body: validation
// failures surface as an error event on an already-open stream. Stages:
//
//	INIT           validate hashtag, emit initial status
//	HASHTAG_LOOKUP resolve name → id (cache, then graph API)
//	MEDIA_LOOKUP   fetch up to limit recent media
//	PER_POST_LOOP  progress + post_processed per post, 2s throttle between
//	COMPLETE       summary event
//
// Per-post failures are embedded in the envelope's extraction_error and
// never abort the loop. Lookup failures jump to the absorbing error state.
// The loop checks the request context before each post so a client
// disconnect stops browser work promptly.
func Stream(deps StreamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)

		emit := func(event string, payload any) {
			c.SSEvent(event, payload)
			c.Writer.Flush()
		}

		activeStreams.Add(1)
		defer activeStreams.Add(-1)

		// ── INIT ────────────────────────────────────────────────────
		var req models.StreamRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Hashtag) == "" {
			emit(models.EventError, models.ErrorEvent{
				Error:   "Hashtag is required",
				Example: models.ExampleStreamRequest(),
			})
			return
		}
		req.Defaults()

		ctx := c.Request.Context()
		slog.Info("hashtag stream started", "hashtag", req.Hashtag, "limit", req.Limit)

		emit(models.EventStatus, models.StatusEvent{
			Message:  "Starting search for hashtag: #" + req.Hashtag,
			Stage:    models.StageInit,
			Progress: 0,
		})

		// ── HASHTAG_LOOKUP ──────────────────────────────────────────
		hashtagID, cached := deps.Hashtags.Get(req.Hashtag)
		if !cached {
			id, err := deps.Graph.SearchHashtag(ctx, req.Hashtag)
			if err != nil {
				failStream(emit, deps.Webhook, req.Hashtag, err)
				return
			}
			hashtagID = id
			if hashtagID != "" {
				deps.Hashtags.Set(req.Hashtag, hashtagID)
			}
		}
		if hashtagID == "" {
			emit(models.EventError, models.ErrorEvent{Error: "Hashtag not found or no posts available"})
			return
		}

		emit(models.EventStatus, models.StatusEvent{
			Message:  "Found hashtag ID: " + hashtagID,
			Stage:    models.StageHashtagFound,
			Progress: 10,
		})

		// ── MEDIA_LOOKUP ────────────────────────────────────────────
		posts, err := deps.Graph.RecentMedia(ctx, hashtagID, req.Limit)
		if err != nil {
			failStream(emit, deps.Webhook, req.Hashtag, err)
			return
		}
		if len(posts) == 0 {
			emit(models.EventComplete, models.EmptyResultEvent{
				Hashtag: req.Hashtag,
				Posts:   []models.PostEnvelope{},
				Message: "No posts found for this hashtag",
			})
			return
		}

		total := len(posts)
		emit(models.EventStatus, models.StatusEvent{
			Message:    fmt.Sprintf("Found %d posts, fetching profiles...", total),
			Stage:      models.StagePostsFound,
			Progress:   20,
			TotalPosts: total,
		})
		emit(models.EventMetadata, models.MetadataEvent{
			Hashtag:      req.Hashtag,
			TotalPosts:   total,
			ProcessedAt:  time.Now().UTC().Format(time.RFC3339),
			HeadlessMode: *req.Headless,
			TimeoutMs:    req.TimeoutMs,
		})

		// ── PER_POST_LOOP ───────────────────────────────────────────
		for i, post := range posts {
			if ctx.Err() != nil {
				slog.Info("client disconnected, stopping stream", "hashtag", req.Hashtag, "processed", i)
				return
			}

			percent := int(math.Round(20 + float64(i)/float64(total)*70))
			emit(models.EventProgress, models.ProgressEvent{
				Current:        i + 1,
				Total:          total,
				Percentage:     percent,
				ProcessingPost: post.ID,
				Message:        fmt.Sprintf("Processing post %d of %d", i+1, total),
			})

			out := deps.Process(ctx, post.Permalink, scraper.Options{
				Cookies:  req.Cookies,
				Headless: *req.Headless,
				Timeout:  time.Duration(req.TimeoutMs) * time.Millisecond,
			})
			emit(models.EventPostProcessed, buildEnvelope(post, i, out))

			if out.Err != nil {
				slog.Warn("post extraction failed", "post", post.ID, "error", out.Err)
			} else {
				slog.Info("post processed", "post", post.ID, "author", out.Author)
			}

			// Throttle between posts, not after the last one.
			if i < total-1 {
				select {
				case <-ctx.Done():
					slog.Info("client disconnected during throttle", "hashtag", req.Hashtag, "processed", i+1)
					return
				case <-time.After(deps.Delay):
				}
			}
		}

		// ── COMPLETE ────────────────────────────────────────────────
		summary := models.CompleteEvent{
			Success:             true,
			Hashtag:             req.Hashtag,
			TotalPostsProcessed: total,
			CompletedAt:         time.Now().UTC().Format(time.RFC3339),
			Message:             fmt.Sprintf("Successfully processed all %d posts", total),
		}
		emit(models.EventComplete, summary)
		slog.Info("hashtag stream completed", "hashtag", req.Hashtag, "posts", total)

		if deps.Webhook.URL != "" {
			webhook.DeliverAsync(deps.Webhook.URL, deps.Webhook.Secret, &webhook.Event{
				Type:      "stream.completed",
				Hashtag:   req.Hashtag,
				Timestamp: time.Now().Unix(),
				Data:      summary,
			})
		}
	}
}

// buildEnvelope maps one post's graph data and extraction outcome into the
// immutable envelope emitted as a post_processed event.
func buildEnvelope(post graph.Media, index int, out scraper.Outcome) models.PostEnvelope {
	env := models.PostEnvelope{
		PostData: models.PostData{
			MediaID:   post.ID,
			Caption:   post.Caption,
			MediaType: post.MediaType,
			MediaURL:  post.MediaURL,
			Permalink: post.Permalink,
			Timestamp: post.Timestamp,
		},
		Index:       index,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if out.Err != nil {
		msg := out.Err.Error()
		env.AuthorData = models.AuthorData{ExtractionError: &msg}
		return env
	}
	author := out.Author
	env.AuthorData = models.AuthorData{Username: &author, Profile: out.Profile}
	return env
}

// failStream emits the absorbing error event and notifies the webhook, if
// configured. The stream ends after this.
func failStream(emit func(string, any), wh config.WebhookConfig, hashtag string, err error) {
	slog.Error("hashtag stream failed", "hashtag", hashtag, "error", err)
	emit(models.EventError, models.ErrorEvent{
		Error:   "Something went wrong",
		Details: err.Error(),
	})
	if wh.URL != "" {
		webhook.DeliverAsync(wh.URL, wh.Secret, &webhook.Event{
			Type:      "stream.failed",
			Hashtag:   hashtag,
			Timestamp: time.Now().Unix(),
			Data:      map[string]string{"error": err.Error()},
		})
	}
}
