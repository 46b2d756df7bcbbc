// Package openlibrary fetches book metadata from the Open Library Books API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://openlibrary.org"

	defaultTimeout = 10 * time.Second
)

var (
	isbnSeparators = regexp.MustCompile(`[-\s]`)
	// 10 digits (the last may be the 'X' check digit) or 13 digits.
	// NormalizeISBN has already uppercased the check digit.
	isbnShape = regexp.MustCompile(`^(?:\d{9}[\dX]|\d{13})$`)
	yearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// FetchError reports a failed book lookup: unknown ISBN, or a transport
// or response-shape failure.
type FetchError struct {
	Msg string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("openlibrary: %s: %v", e.Msg, e.Err)
	}
	return "openlibrary: " + e.Msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// BookMetadata holds the fields fetched for one book.
type BookMetadata struct {
	Title     string `json:"title"`
	Authors   string `json:"authors,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Year      *int   `json:"year,omitempty"`
	ISBN      string `json:"isbn"`
	URL       string `json:"url,omitempty"`
}

// Client looks up books by ISBN.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client. An empty baseURL selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// NormalizeISBN strips hyphens and spaces and uppercases the 'X' check
// digit, so the stored and queried ISBN carry the canonical form.
func NormalizeISBN(isbn string) string {
	return strings.ToUpper(isbnSeparators.ReplaceAllString(strings.TrimSpace(isbn), ""))
}

type bookRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishDate string `json:"publish_date"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
}

// FetchByISBN fetches book metadata for an ISBN-10 or ISBN-13, with or
// without separators. The stored ISBN keeps a literal 'X' check digit.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return nil, &FetchError{Msg: "ISBN is required"}
	}
	if !isbnShape.MatchString(isbn) {
		return nil, &FetchError{Msg: "invalid ISBN format: " + isbn}
	}

	query := url.Values{}
	query.Set("bibkeys", "ISBN:"+isbn)
	query.Set("format", "json")
	query.Set("jscmd", "data")
	endpoint := c.baseURL + "/api/books?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Msg: "failed to build request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Msg: "failed to fetch book", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Msg: fmt.Sprintf("Open Library returned status %d", resp.StatusCode)}
	}

	var data map[string]bookRecord
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{Msg: "failed to parse response", Err: err}
	}

	book, ok := data["ISBN:"+isbn]
	if !ok {
		return nil, &FetchError{Msg: "book not found for ISBN: " + isbn}
	}

	return mapBook(isbn, book), nil
}

func mapBook(isbn string, book bookRecord) *BookMetadata {
	title := book.Title
	if title == "" {
		title = "Unknown Title"
	}

	names := make([]string, 0, len(book.Authors))
	for _, a := range book.Authors {
		names = append(names, a.Name)
	}

	publisher := ""
	if len(book.Publishers) > 0 {
		publisher = book.Publishers[0].Name
	}

	var year *int
	if match := yearToken.FindString(book.PublishDate); match != "" {
		y, err := strconv.Atoi(match)
		if err == nil {
			year = &y
		}
	}

	return &BookMetadata{
		Title:     title,
		Authors:   strings.Join(names, ", "),
		Publisher: publisher,
		Year:      year,
		ISBN:      isbn,
		URL:       book.URL,
	}
}
