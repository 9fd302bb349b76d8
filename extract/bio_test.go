package extract

import (
	"context"
	"testing"
)

func TestBio_StructuredDescriptionWins(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Person","description":"Just Do It."}</script>
	</head><body>
		<header><span>Some header line that is longer</span></header>
	</body></html>`

	p := Bio().Run(context.Background(), &Snapshot{Username: "nike", HTML: html})
	if p == nil || p.Bio != "Just Do It." {
		t.Fatalf("bio = %+v, want structured description %q", p, "Just Do It.")
	}
}

func TestBio_SkipsEmptyAndMalformedStructuredBlocks(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<script type="application/ld+json">{"description":"  "}</script>
		<script type="application/ld+json">{"description":"Runner. Coffee addict."}</script>
	</head><body></body></html>`

	p := Bio().Run(context.Background(), &Snapshot{Username: "runner1", HTML: html})
	if p == nil || p.Bio != "Runner. Coffee addict." {
		t.Fatalf("bio = %+v, want %q", p, "Runner. Coffee addict.")
	}
}

func TestBio_HeaderHeuristicFallback(t *testing.T) {
	html := `<html><body><header>
		<span>travelgram</span>
		<span>1,234 followers</span>
		<span>321 following</span>
		<span>96 posts</span>
		<span>Follow</span>
		<span>Exploring the world, one city at a time.</span>
	</header></body></html>`

	p := Bio().Run(context.Background(), &Snapshot{Username: "travelgram", HTML: html})
	if p == nil || p.Bio != "Exploring the world, one city at a time." {
		t.Fatalf("bio = %+v, want the header line that survived filtering", p)
	}
}

func TestBio_NoUsableHeaderLines(t *testing.T) {
	html := `<html><body><header>
		<span>nike</span>
		<span>302M followers</span>
		<span>Follow</span>
	</header></body></html>`

	if p := Bio().Run(context.Background(), &Snapshot{Username: "nike", HTML: html}); p != nil {
		t.Errorf("expected nil partial when only boilerplate remains, got %+v", p)
	}
}

func TestBioCandidate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		username string
		want     string
	}{
		{
			name:     "prefers punctuated candidate over longest",
			lines:    []string{"Supercalifragilistic", "Hello, world"},
			username: "u",
			want:     "Hello, world",
		},
		{
			name:     "falls back to longest without punctuation",
			lines:    []string{"abc", "abcdefgh"},
			username: "u",
			want:     "abcdefgh",
		},
		{
			name:     "drops boilerplate lines",
			lines:    []string{"12 followers", "34 following", "See similar accounts", "A real bio here"},
			username: "u",
			want:     "A real bio here",
		},
		{
			name:     "drops lines containing the username",
			lines:    []string{"by nike team", "Independent athlete page"},
			username: "nike",
			want:     "Independent athlete page",
		},
		{
			name:     "drops digit-only lines",
			lines:    []string{"12345", "already read"},
			username: "u",
			want:     "already read",
		},
		{
			name:     "rejects too-short winner",
			lines:    []string{"ab"},
			username: "u",
			want:     "",
		},
		{
			name:     "deduplicates before ranking",
			lines:    []string{"dup line", "dup line", "dup line"},
			username: "u",
			want:     "dup line",
		},
		{
			name:     "empty input",
			lines:    nil,
			username: "u",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BioCandidate(tt.lines, tt.username); got != tt.want {
				t.Errorf("BioCandidate(%v, %q) = %q, want %q", tt.lines, tt.username, got, tt.want)
			}
		})
	}
}

func TestHeaderLines(t *testing.T) {
	html := `<html><body>
		<div>outside header</div>
		<header>
			<h2>name</h2>
			<span>line one</span>
			<script>ignored()</script>
			<svg><title>icon</title></svg>
			<div><span>line two</span></div>
		</header>
		<div>also outside</div>
	</body></html>`

	got := headerLines(html)
	want := []string{"name", "line one", "line two"}
	if len(got) != len(want) {
		t.Fatalf("headerLines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
