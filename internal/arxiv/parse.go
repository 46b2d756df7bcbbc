package arxiv

import (
	"regexp"
	"strings"
)

var (
	// New format: YYMM.NNNNN with optional version suffix.
	newIDPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5})(v\d+)?$`)
	// Old format: archive/YYMMNNN or archive.subject/YYMMNNN.
	oldIDPattern = regexp.MustCompile(`(?i)^([a-z-]+(?:\.[a-z-]+)?/\d{7})(v\d+)?$`)

	urlPatterns = []*regexp.Regexp{
		// https://arxiv.org/abs/2301.01234 or .../abs/2301.01234v2
		regexp.MustCompile(`arxiv\.org/abs/([a-z-]*/?[\d.]+v?\d*)`),
		// https://arxiv.org/pdf/2301.01234.pdf
		regexp.MustCompile(`arxiv\.org/pdf/([a-z-]*/?[\d.]+v?\d*)(?:\.pdf)?`),
		// https://ar5iv.org/abs/2301.01234
		regexp.MustCompile(`ar5iv\.org/(?:abs|html)/([a-z-]*/?[\d.]+v?\d*)`),
	}
)

// ParseInput parses an arXiv URL or bare identifier into the canonical ID
// and its version suffix ("" when unversioned).
func ParseInput(urlOrID string) (string, string, error) {
	urlOrID = strings.TrimSpace(urlOrID)

	for _, pattern := range urlPatterns {
		match := pattern.FindStringSubmatch(urlOrID)
		if match != nil {
			// The extracted body of a /pdf/ URL keeps a trailing ".pdf"
			// or a bare trailing dot; trim both.
			extracted := strings.TrimRight(match[1], ".pdf")
			return parseIDWithVersion(extracted)
		}
	}

	return parseIDWithVersion(urlOrID)
}

func parseIDWithVersion(id string) (string, string, error) {
	id = strings.TrimSpace(id)

	if match := newIDPattern.FindStringSubmatch(id); match != nil {
		return match[1], match[2], nil
	}
	if match := oldIDPattern.FindStringSubmatch(id); match != nil {
		return match[1], match[2], nil
	}

	return "", "", &ParseError{Input: id}
}
