package papers

import "fmt"

// Source records how a paper entered the library.
type Source string

const (
	SourceArxiv  Source = "ARXIV"
	SourceURL    Source = "URL"
	SourceManual Source = "MANUAL"
)

func (s Source) Valid() bool {
	switch s {
	case SourceArxiv, SourceURL, SourceManual:
		return true
	}
	return false
}

func ParseSource(s string) (Source, error) {
	if s == "" {
		return SourceManual, nil
	}
	src := Source(s)
	if !src.Valid() {
		return "", fmt.Errorf("invalid source: %q", s)
	}
	return src, nil
}

// DiscoveryType distinguishes discovery via another paper from a free-text
// description.
type DiscoveryType string

const (
	DiscoveryPaper DiscoveryType = "PAPER"
	DiscoveryText  DiscoveryType = "TEXT"
)

func (t DiscoveryType) Valid() bool {
	return t == DiscoveryPaper || t == DiscoveryText
}

func ParseDiscoveryType(s string) (DiscoveryType, error) {
	t := DiscoveryType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid discovery source type: %q", s)
	}
	return t, nil
}
