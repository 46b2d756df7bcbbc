package arxiv

import "fmt"

// ParseError reports input that matches no known arXiv identifier shape.
// When a URL pattern matched, Input is the extracted body, not the URL.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid arXiv identifier: %s", e.Input)
}

// FetchError reports a failed metadata fetch: the paper was not found,
// or the arXiv API call failed in transit or decoding.
type FetchError struct {
	Msg string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("arxiv: %s: %v", e.Msg, e.Err)
	}
	return "arxiv: " + e.Msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
