package extract

import (
	"context"
	"regexp"
	"strings"
)

var (
	reMetaFollowers = regexp.MustCompile(`([0-9][0-9.,]*\s*[kmb]?)[^a-z0-9]*followers`)
	reMetaFollowing = regexp.MustCompile(`([0-9][0-9.,]*\s*[kmb]?)[^a-z0-9]*following`)
)

// MetaCounts parses follower/following counts out of the page's descriptive
// meta text ("1.2M Followers, 310 Following, 2,841 Posts — ...").
func MetaCounts() Strategy {
	return Strategy{
		Name: "meta",
		Run: func(_ context.Context, snap *Snapshot) *Partial {
			desc := snap.MetaDescription()
			if desc == "" {
				return nil
			}
			lower := strings.ToLower(desc)

			var p Partial
			if m := reMetaFollowers.FindStringSubmatch(lower); m != nil {
				n := ParseCount(m[1])
				p.Followers = &n
			}
			if m := reMetaFollowing.FindStringSubmatch(lower); m != nil {
				n := ParseCount(m[1])
				p.Following = &n
			}
			if p.Followers == nil && p.Following == nil {
				return nil
			}
			return &p
		},
	}
}

// MetaDescription returns the page's og:description content, falling back
// to the plain description meta tag. Empty when neither exists.
func (s *Snapshot) MetaDescription() string {
	doc, err := s.Doc()
	if err != nil {
		return ""
	}
	if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && v != "" {
		return v
	}
	v, _ := doc.Find(`meta[name="description"]`).Attr("content")
	return v
}
