package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is the rendered page state the fallback chain operates on.
// Strategies that only need markup work off HTML; the structured-endpoint
// strategy additionally talks to the live page through an Evaluator closure
// supplied by the caller, so the chain itself stays browser-agnostic.
type Snapshot struct {
	Username string
	HTML     string

	doc    *goquery.Document
	docErr error
}

// Doc lazily parses the snapshot HTML. The parse happens at most once per
// snapshot, no matter how many strategies consult it.
func (s *Snapshot) Doc() (*goquery.Document, error) {
	if s.doc == nil && s.docErr == nil {
		s.doc, s.docErr = goquery.NewDocumentFromReader(strings.NewReader(s.HTML))
	}
	return s.doc, s.docErr
}

// Partial is the subset of profile fields a single strategy produced.
// Nil count pointers and an empty Bio mean "this strategy has no opinion".
type Partial struct {
	Followers *int
	Following *int
	Bio       string
}

// Strategy is one entry in the ordered fallback chain. Run returns nil when
// the strategy produced nothing; that is a normal outcome, not an error.
type Strategy struct {
	Name string
	Run  func(ctx context.Context, snap *Snapshot) *Partial
}

// Result accumulates fields across strategies. Once a field is filled it is
// never overwritten by a later, lower-priority strategy.
type Result struct {
	Followers *int
	Following *int
	Bio       string

	// Sources records which strategy filled each field, keyed by
	// "followers", "following" and "bio".
	Sources map[string]string
}

// Complete reports whether every field has been filled.
func (r *Result) Complete() bool {
	return r.Followers != nil && r.Following != nil && r.Bio != ""
}

// Merge applies fill-if-still-empty semantics for a strategy's output.
func (r *Result) Merge(name string, p *Partial) {
	if p == nil {
		return
	}
	if r.Sources == nil {
		r.Sources = make(map[string]string, 3)
	}
	if r.Followers == nil && p.Followers != nil {
		r.Followers = p.Followers
		r.Sources["followers"] = name
	}
	if r.Following == nil && p.Following != nil {
		r.Following = p.Following
		r.Sources["following"] = name
	}
	if r.Bio == "" && p.Bio != "" {
		r.Bio = p.Bio
		r.Sources["bio"] = name
	}
}

// RunChain applies strategies in priority order, skipping the rest once
// every field is filled or the context is gone. Instagram's markup and API
// responses are unstable, so no single strategy is reliable; the chain
// trades latency for robustness.
func RunChain(ctx context.Context, snap *Snapshot, strategies []Strategy) *Result {
	res := &Result{}
	for _, st := range strategies {
		if res.Complete() || ctx.Err() != nil {
			break
		}
		p := st.Run(ctx, snap)
		if p == nil {
			slog.Debug("profile strategy produced nothing", "strategy", st.Name, "username", snap.Username)
			continue
		}
		res.Merge(st.Name, p)
	}
	return res
}
