package extract

import (
	"context"
	"fmt"
)

// AnchorCounts reads follower/following counts from the visible text of the
// profile page's own count anchors (/<username>/followers/ and friends).
// This survives markup reshuffles as long as the canonical link targets do.
func AnchorCounts() Strategy {
	return Strategy{
		Name: "anchors",
		Run: func(_ context.Context, snap *Snapshot) *Partial {
			doc, err := snap.Doc()
			if err != nil || snap.Username == "" {
				return nil
			}

			var p Partial
			followers := doc.Find(fmt.Sprintf(`a[href='/%s/followers/']`, snap.Username))
			if followers.Length() > 0 {
				n := ParseCount(followers.First().Text())
				p.Followers = &n
			}
			following := doc.Find(fmt.Sprintf(`a[href='/%s/following/']`, snap.Username))
			if following.Length() > 0 {
				n := ParseCount(following.First().Text())
				p.Following = &n
			}
			if p.Followers == nil && p.Following == nil {
				return nil
			}
			return &p
		},
	}
}
