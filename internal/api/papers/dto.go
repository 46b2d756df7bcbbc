package papers

import (
	"time"

	"paper-tracker/internal/arxiv"
	"paper-tracker/internal/domain/papers"
)

// PaperRequest is the create/update body. Updates replace the paper
// wholesale, so clients send the full document each time.
type PaperRequest struct {
	Title    string `json:"title" binding:"required"`
	Abstract string `json:"abstract"`
	URL      string `json:"url"`
	PDFURL   string `json:"pdf_url"`

	Source string `json:"source"`
	Status string `json:"status"`

	CategoryID *uint `json:"category_id"`

	// Authors replaces the paper's author list when present; nil leaves it
	// untouched on update.
	Authors []string `json:"authors"`

	Notes     string `json:"notes"`
	VenueYear string `json:"venue_year"`

	ArxivID              string     `json:"arxiv_id"`
	ArxivVersion         string     `json:"arxiv_version"`
	ArxivPrimaryCategory string     `json:"arxiv_primary_category"`
	ArxivPublishedAt     *time.Time `json:"arxiv_published_at"`
	ArxivUpdatedAt       *time.Time `json:"arxiv_updated_at"`

	DOI         string `json:"doi"`
	JournalRef  string `json:"journal_ref"`
	CitationKey string `json:"citation_key"`
}

type ReorderRequest struct {
	Status     string `json:"status" binding:"required"`
	PaperIDs   []uint `json:"paper_ids" binding:"required"`
	CategoryID *uint  `json:"category_id"`
}

type FetchArxivRequest struct {
	URLOrID string `json:"url_or_id" binding:"required"`
}

type SourceRequest struct {
	SourceType    string `json:"source_type" binding:"required"`
	SourceArxivID string `json:"source_arxiv_id"`
	SourceText    string `json:"source_text"`
}

type AuthorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PaperResponse struct {
	papers.Paper
	Authors     []AuthorRef `json:"authors"`
	EffortTotal int         `json:"effort_total"`
	SourceCount int64       `json:"source_count"`
}

func buildPaperResponse(p papers.Paper, effortTotal int, sourceCount int64) PaperResponse {
	authors := make([]AuthorRef, 0, len(p.AuthorLinks))
	for _, link := range p.AuthorLinks {
		authors = append(authors, AuthorRef{ID: link.AuthorID, Name: link.Author.Name})
	}
	return PaperResponse{
		Paper:       p,
		Authors:     authors,
		EffortTotal: effortTotal,
		SourceCount: sourceCount,
	}
}

type ArxivPreview struct {
	Title                string     `json:"title"`
	Abstract             string     `json:"abstract"`
	URL                  string     `json:"url"`
	PDFURL               string     `json:"pdf_url"`
	Source               string     `json:"source"`
	ArxivID              string     `json:"arxiv_id"`
	ArxivVersion         string     `json:"arxiv_version"`
	ArxivPrimaryCategory string     `json:"arxiv_primary_category"`
	ArxivPublishedAt     *time.Time `json:"arxiv_published_at"`
	ArxivUpdatedAt       *time.Time `json:"arxiv_updated_at"`
	DOI                  string     `json:"doi"`
	JournalRef           string     `json:"journal_ref"`
	Authors              []string   `json:"authors"`
}

func buildArxivPreview(meta *arxiv.Metadata) ArxivPreview {
	names := make([]string, 0, len(meta.Authors))
	for _, a := range meta.Authors {
		names = append(names, a.Name)
	}
	return ArxivPreview{
		Title:                meta.Title,
		Abstract:             meta.Abstract,
		URL:                  meta.URL,
		PDFURL:               meta.PDFURL,
		Source:               string(papers.SourceArxiv),
		ArxivID:              meta.ArxivID,
		ArxivVersion:         meta.ArxivVersion,
		ArxivPrimaryCategory: meta.PrimaryCategory,
		ArxivPublishedAt:     meta.PublishedAt,
		ArxivUpdatedAt:       meta.UpdatedAt,
		DOI:                  meta.DOI,
		JournalRef:           meta.JournalRef,
		Authors:              names,
	}
}
