package changelog

import "fmt"

// Link is one reference-style link rendered in the changelog footer. Each
// section boundary produces one link: a commits listing when the history
// has no releases, a compare link between adjacent boundaries, or the
// release-tag page for the oldest release.
type Link struct {
	Anchor string
	URL    string
}

func (l Link) String() string {
	return fmt.Sprintf("[%s]: %s", l.Anchor, l.URL)
}

// buildLink derives the footer link for a window. Callers must not invoke
// it without a known owner and repo; with them present URL construction
// never fails.
func buildLink(w window, owner, repo string) Link {
	base := fmt.Sprintf("https://github.com/%s/%s", owner, repo)

	switch w.kind {
	case windowHeadToRelease:
		return Link{
			Anchor: "Unreleased",
			URL:    fmt.Sprintf("%s/compare/v%s...HEAD", base, w.older.Version),
		}
	case windowReleaseToRelease:
		return Link{
			Anchor: w.tag.Version.String(),
			URL:    fmt.Sprintf("%s/compare/v%s...v%s", base, w.older.Version, w.tag.Version),
		}
	case windowReleaseToStart:
		return Link{
			Anchor: w.tag.Version.String(),
			URL:    fmt.Sprintf("%s/releases/tag/v%s", base, w.tag.Version),
		}
	default:
		return Link{
			Anchor: "Unreleased",
			URL:    base + "/commits/main/",
		}
	}
}
