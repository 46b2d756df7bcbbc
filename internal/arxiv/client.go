package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://export.arxiv.org"

	defaultTimeout = 10 * time.Second
)

var versionSuffix = regexp.MustCompile(`v(\d+)$`)

// AuthorInfo is one author as reported by arXiv, with the derived slug.
type AuthorInfo struct {
	Name string
	Slug string
}

// Metadata holds the fields fetched for one paper.
type Metadata struct {
	ArxivID         string
	ArxivVersion    string
	Title           string
	Abstract        string
	Authors         []AuthorInfo
	URL             string
	PDFURL          string
	PublishedAt     *time.Time
	UpdatedAt       *time.Time
	PrimaryCategory string
	DOI             string
	JournalRef      string
}

// Client fetches paper metadata from the arXiv export API.
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

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string       `xml:"id"`
	Title           string       `xml:"title"`
	Summary         string       `xml:"summary"`
	Published       string       `xml:"published"`
	Updated         string       `xml:"updated"`
	Authors         []atomPerson `xml:"author"`
	Links           []atomLink   `xml:"link"`
	DOI             string       `xml:"doi"`
	JournalRef      string       `xml:"journal_ref"`
	PrimaryCategory atomCategory `xml:"primary_category"`
}

type atomPerson struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// Fetch retrieves metadata for a canonical (version-stripped) arXiv ID.
// Not-found and transport failures both surface as *FetchError.
func (c *Client) Fetch(ctx context.Context, arxivID string) (*Metadata, error) {
	query := url.Values{}
	query.Set("id_list", arxivID)
	query.Set("max_results", "1")
	endpoint := c.baseURL + "/api/query?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Msg: "failed to build request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Msg: "failed to fetch arXiv metadata", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Msg: fmt.Sprintf("arXiv API returned status %d", resp.StatusCode)}
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &FetchError{Msg: "failed to decode arXiv response", Err: err}
	}

	if len(feed.Entries) == 0 {
		return nil, &FetchError{Msg: "paper not found: " + arxivID}
	}
	entry := feed.Entries[0]
	// Malformed IDs come back as a single error entry.
	if entry.ID == "" || strings.Contains(entry.ID, "api/errors") {
		return nil, &FetchError{Msg: "paper not found: " + arxivID}
	}

	return mapEntry(arxivID, entry), nil
}

func mapEntry(arxivID string, entry atomEntry) *Metadata {
	version := ""
	if match := versionSuffix.FindStringSubmatch(entry.ID); match != nil {
		version = "v" + match[1]
	}

	authors := make([]AuthorInfo, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, AuthorInfo{
			Name: a.Name,
			Slug: NormalizeAuthorName(a.Name),
		})
	}

	pdfURL := ""
	for _, link := range entry.Links {
		if link.Title == "pdf" || link.Type == "application/pdf" {
			pdfURL = link.Href
			break
		}
	}

	return &Metadata{
		ArxivID:         arxivID,
		ArxivVersion:    version,
		Title:           collapseWhitespace(entry.Title),
		Abstract:        strings.TrimSpace(entry.Summary),
		Authors:         authors,
		URL:             entry.ID,
		PDFURL:          pdfURL,
		PublishedAt:     parseAtomTime(entry.Published),
		UpdatedAt:       parseAtomTime(entry.Updated),
		PrimaryCategory: entry.PrimaryCategory.Term,
		DOI:             strings.TrimSpace(entry.DOI),
		JournalRef:      strings.TrimSpace(entry.JournalRef),
	}
}

// collapseWhitespace folds the embedded newlines arXiv puts in long titles.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func parseAtomTime(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
