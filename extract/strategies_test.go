package extract

import (
	"context"
	"testing"
)

func TestMetaCounts(t *testing.T) {
	tests := []struct {
		name          string
		html          string
		wantFollowers *int
		wantFollowing *int
		wantNil       bool
	}{
		{
			name: "og description with both counts",
			html: `<html><head><meta property="og:description" content="1.2M Followers, 310 Following, 2,841 Posts - Nike (@nike)"></head></html>`,
			wantFollowers: intPtr(1200000),
			wantFollowing: intPtr(310),
		},
		{
			name: "plain description fallback",
			html: `<html><head><meta name="description" content="523 Followers, 1.1K Following"></head></html>`,
			wantFollowers: intPtr(523),
			wantFollowing: intPtr(1100),
		},
		{
			name:          "followers only",
			html:          `<html><head><meta property="og:description" content="42 Followers on this page"></head></html>`,
			wantFollowers: intPtr(42),
		},
		{
			name:    "description without counts",
			html:    `<html><head><meta property="og:description" content="See photos and videos"></head></html>`,
			wantNil: true,
		},
		{
			name:    "no meta tags",
			html:    `<html><head><title>x</title></head><body></body></html>`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &Snapshot{Username: "nike", HTML: tt.html}
			p := MetaCounts().Run(context.Background(), snap)

			if tt.wantNil {
				if p != nil {
					t.Fatalf("expected nil partial, got %+v", p)
				}
				return
			}
			if p == nil {
				t.Fatal("expected a partial, got nil")
			}
			checkCount(t, "followers", p.Followers, tt.wantFollowers)
			checkCount(t, "following", p.Following, tt.wantFollowing)
		})
	}
}

func TestAnchorCounts(t *testing.T) {
	html := `<html><body>
		<header>
			<a href="/nike/followers/"><span>302M</span> followers</a>
			<a href="/nike/following/"><span>164</span> following</a>
		</header>
	</body></html>`

	snap := &Snapshot{Username: "nike", HTML: html}
	p := AnchorCounts().Run(context.Background(), snap)
	if p == nil {
		t.Fatal("expected a partial, got nil")
	}
	checkCount(t, "followers", p.Followers, intPtr(302000000))
	checkCount(t, "following", p.Following, intPtr(164))
}

func TestAnchorCounts_OtherUsersAnchorsIgnored(t *testing.T) {
	html := `<html><body><a href="/adidas/followers/">9K</a></body></html>`

	snap := &Snapshot{Username: "nike", HTML: html}
	if p := AnchorCounts().Run(context.Background(), snap); p != nil {
		t.Errorf("expected nil partial for another user's anchors, got %+v", p)
	}
}

func TestAuthorFromSnapshot(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "notranslate anchor wins",
			html: `<html><body>
				<a href="/p/ABC/" role="link">permalink</a>
				<a href="/the_author/" class="x1 notranslate y2">the_author</a>
			</body></html>`,
			want: "the_author",
		},
		{
			name: "role link fallback",
			html: `<html><body><a href="/someone/" role="link">someone</a></body></html>`,
			want: "someone",
		},
		{
			name: "header anchor fallback",
			html: `<html><body><article><header><a href="/byline_user/">x</a></header></article></body></html>`,
			want: "byline_user",
		},
		{
			name: "reserved hrefs skipped within a strategy",
			html: `<html><body><header>
				<a href="/p/ABC123/">post</a>
				<a href="/real_user/">real</a>
			</header></body></html>`,
			want: "real_user",
		},
		{
			name: "no candidates",
			html: `<html><body><a href="https://example.com/foo">external</a></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorFromSnapshot(tt.html); got != tt.want {
				t.Errorf("AuthorFromSnapshot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func checkCount(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s = %d, want unset", field, *got)
	case want != nil && got == nil:
		t.Errorf("%s unset, want %d", field, *want)
	case want != nil && got != nil && *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}
