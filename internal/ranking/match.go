package ranking

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// spatialRemix matches "8D", "16d" and similar tags used by spatial audio re-uploads.
var spatialRemix = regexp.MustCompile(`(?i)\d+D`)

// fold returns s case folded. A new Caser is used per call since Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// ContainsAll reports whether every needle is within s, ignoring case.
func ContainsAll(s string, needles []string) bool {
	folded := fold(s)
	for _, n := range needles {
		if !strings.Contains(folded, fold(n)) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one needle is within s, ignoring case.
func ContainsAny(s string, needles []string) bool {
	folded := fold(s)
	for _, n := range needles {
		if strings.Contains(folded, fold(n)) {
			return true
		}
	}
	return false
}

// IsSpatialRemix reports whether title carries an "8D"-style tag.
func IsSpatialRemix(title string) bool {
	return spatialRemix.MatchString(title)
}

// MatchesTrack reports whether a video title names every artist and the track and is not a spatial remix.
func MatchesTrack(title string, artists []string, track string) bool {
	return ContainsAll(title, artists) && ContainsFold(title, track) && !IsSpatialRemix(title)
}
