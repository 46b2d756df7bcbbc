package reading

import "fmt"

// Status is the reading state of a paper or textbook.
type Status string

const (
	StatusPlanned Status = "PLANNED"
	StatusReading Status = "READING"
	StatusRead    Status = "READ"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusReading, StatusRead:
		return true
	}
	return false
}

// ParseStatus validates a client-supplied status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid status: %q", s)
	}
	return st, nil
}

// SortMode selects the list ordering for papers and textbooks.
type SortMode string

const (
	SortManual SortMode = "manual"
	SortLikes  SortMode = "likes"
	SortAdded  SortMode = "added"
	SortRead   SortMode = "read"
)

// ParseSortMode falls back to manual for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortLikes, SortAdded, SortRead:
		return SortMode(s)
	}
	return SortManual
}
