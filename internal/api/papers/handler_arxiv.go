package papers

import (
	"net/http"
	"sync"

	"paper-tracker/config"
	"paper-tracker/database"
	"paper-tracker/internal/arxiv"
	"paper-tracker/internal/domain/papers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	clientOnce  sync.Once
	arxivClient *arxiv.Client
)

func client() *arxiv.Client {
	clientOnce.Do(func() {
		arxivClient = arxiv.NewClient(config.ARXIV_BASE_URL)
	})
	return arxivClient
}

// POST /papers/fetch-arxiv
// Parses the input and returns a metadata preview for the add-paper form.
// Parse and fetch failures are recoverable: the caller falls back to
// manual entry.
func FetchArxiv(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	var req FetchArxivRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url_or_id required"})
		return
	}

	arxivID, version, err := arxiv.ParseInput(req.URLOrID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	meta, err := client().Fetch(c.Request.Context(), arxivID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if meta.ArxivVersion == "" {
		meta.ArxivVersion = version
	}

	c.JSON(http.StatusOK, buildArxivPreview(meta))
}

// POST /papers/:id/refresh-arxiv
// Re-fetches metadata for an arXiv paper, preserving notes, category, and
// status, and replacing the author links.
func RefreshArxiv(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}
	if paper.ArxivID == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Paper has no arXiv ID"})
		return
	}

	meta, err := client().Fetch(c.Request.Context(), *paper.ArxivID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	paper.Title = meta.Title
	paper.Abstract = meta.Abstract
	paper.URL = meta.URL
	paper.PDFURL = meta.PDFURL
	paper.ArxivVersion = meta.ArxivVersion
	paper.ArxivPrimaryCategory = meta.PrimaryCategory
	paper.ArxivPublishedAt = meta.PublishedAt
	paper.ArxivUpdatedAt = meta.UpdatedAt
	paper.DOI = meta.DOI
	paper.JournalRef = meta.JournalRef

	inputs := make([]authorInput, 0, len(meta.Authors))
	for _, a := range meta.Authors {
		inputs = append(inputs, authorInput{Name: a.Name, Slug: a.Slug})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AuthorLinks", "DiscoverySources", "Category").Save(paper).Error; err != nil {
			return err
		}
		return replaceAuthorLinks(tx, userID, paper.ID, inputs)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh paper", "details": err.Error()})
		return
	}

	reloaded, ok := reloadPaper(c, userID, paper.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildPaperResponse(*reloaded, 0, 0))
}

// resolveSourcePaper finds the cited arXiv ID within the same library.
func resolveSourcePaper(db *gorm.DB, userID uint, arxivID string) *uint {
	var source papers.Paper
	err := db.Where("user_id = ? AND arxiv_id = ?", userID, arxivID).First(&source).Error
	if err != nil {
		return nil
	}
	return &source.ID
}
