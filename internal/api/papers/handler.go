package papers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"paper-tracker/database"
	"paper-tracker/internal/domain/authors"
	"paper-tracker/internal/domain/effort"
	"paper-tracker/internal/domain/ordering"
	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// GET /papers?status=&category_id=&sort_by=
func GetPapers(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := preloadPaper(userPapersQuery(database.DB, userID))
	q = applySort(q, reading.ParseSortMode(c.Query("sort_by")))

	if s := c.Query("status"); s != "" {
		status, err := reading.ParseStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		q = q.Where("status = ?", status)
	}
	if cid := c.Query("category_id"); cid != "" {
		id, err := strconv.ParseUint(cid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		q = q.Where("category_id = ?", uint(id))
	}

	var list []papers.Paper
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load papers"})
		return
	}

	effortTotals, err := effort.PaperTotals(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load effort totals"})
		return
	}
	srcCounts, err := sourceCounts(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load source counts"})
		return
	}
	counts, err := statusCounts(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load counts"})
		return
	}

	out := make([]PaperResponse, 0, len(list))
	for _, p := range list {
		out = append(out, buildPaperResponse(p, effortTotals[p.ID], srcCounts[p.ID]))
	}

	c.JSON(http.StatusOK, gin.H{"papers": out, "counts": counts})
}

// GET /papers/:id
func GetPaper(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	total, err := effort.PaperTotal(database.DB, userID, paper.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load effort total"})
		return
	}
	var srcCount int64
	if err := database.DB.Model(&papers.DiscoverySource{}).
		Where("paper_id = ?", paper.ID).Count(&srcCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load source count"})
		return
	}

	c.JSON(http.StatusOK, buildPaperResponse(*paper, total, srcCount))
}

// POST /papers
func CreatePaper(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := reading.StatusPlanned
	if req.Status != "" {
		var err error
		if status, err = reading.ParseStatus(req.Status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	source, err := papers.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var paper papers.Paper
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// New papers are placed above everything in the same status
		// bucket, regardless of category.
		orderIndex, err := ordering.PlaceNew(tx, &papers.Paper{}, ordering.Partition{
			UserID: userID,
			Status: status,
		})
		if err != nil {
			return err
		}

		paper = papers.Paper{
			UserID:               userID,
			Title:                req.Title,
			Abstract:             req.Abstract,
			URL:                  req.URL,
			PDFURL:               req.PDFURL,
			Source:               source,
			Status:               status,
			CategoryID:           req.CategoryID,
			OrderIndex:           orderIndex,
			Notes:                req.Notes,
			VenueYear:            req.VenueYear,
			ArxivVersion:         req.ArxivVersion,
			ArxivPrimaryCategory: req.ArxivPrimaryCategory,
			ArxivPublishedAt:     req.ArxivPublishedAt,
			ArxivUpdatedAt:       req.ArxivUpdatedAt,
			DOI:                  req.DOI,
			JournalRef:           req.JournalRef,
			CitationKey:          req.CitationKey,
		}
		if req.ArxivID != "" {
			paper.ArxivID = &req.ArxivID
		}
		if err := tx.Create(&paper).Error; err != nil {
			return err
		}

		return replaceAuthorLinks(tx, userID, paper.ID, namesToAuthorInputs(req.Authors))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Paper with this arXiv ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper", "details": err.Error()})
		return
	}

	reloaded, ok := reloadPaper(c, userID, paper.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, buildPaperResponse(*reloaded, 0, 0))
}

// PUT /papers/:id
// Full replacement: fields omitted from the request body are cleared. The
// one exception is the author list, which a nil authors field leaves
// untouched.
func UpdatePaper(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := reading.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source, err := papers.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldStatus := paper.Status

	paper.Title = req.Title
	paper.Abstract = req.Abstract
	paper.URL = req.URL
	paper.PDFURL = req.PDFURL
	paper.Source = source
	paper.Status = status
	paper.CategoryID = req.CategoryID
	paper.Notes = req.Notes
	paper.VenueYear = req.VenueYear
	paper.ArxivVersion = req.ArxivVersion
	paper.ArxivPrimaryCategory = req.ArxivPrimaryCategory
	paper.ArxivPublishedAt = req.ArxivPublishedAt
	paper.ArxivUpdatedAt = req.ArxivUpdatedAt
	paper.DOI = req.DOI
	paper.JournalRef = req.JournalRef
	paper.CitationKey = req.CitationKey
	if req.ArxivID != "" {
		paper.ArxivID = &req.ArxivID
	} else {
		paper.ArxivID = nil
	}

	applyReadAt(paper, oldStatus, status)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AuthorLinks", "DiscoverySources", "Category").Save(paper).Error; err != nil {
			return err
		}
		if req.Authors != nil {
			return replaceAuthorLinks(tx, userID, paper.ID, namesToAuthorInputs(req.Authors))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Paper with this arXiv ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paper", "details": err.Error()})
		return
	}

	reloaded, ok := reloadPaper(c, userID, paper.ID)
	if !ok {
		return
	}
	total, _ := effort.PaperTotal(database.DB, userID, paper.ID)
	c.JSON(http.StatusOK, buildPaperResponse(*reloaded, total, 0))
}

// DELETE /papers/:id
func DeletePaper(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Delete(&papers.Paper{}, paper.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete paper"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /papers/:id/like
func LikePaper(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(&papers.Paper{}).
		Where("id = ?", paper.ID).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": paper.Likes + 1})
}

// POST /papers/reorder
func ReorderPapers(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.PaperIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status and paper_ids required"})
		return
	}

	status, err := reading.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := ordering.Reorder(database.DB, &papers.Paper{}, ordering.Partition{
		UserID:     userID,
		Status:     status,
		CategoryID: req.CategoryID,
	}, req.PaperIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder papers"})
		return
	}
	if !matched {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper IDs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// findPaper loads :id scoped to the user, answering 404 on miss.
func findPaper(c *gin.Context, userID uint) (*papers.Paper, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper id"})
		return nil, false
	}

	var paper papers.Paper
	err = preloadPaper(database.DB.Where("user_id = ?", userID)).
		First(&paper, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		}
		return nil, false
	}
	return &paper, true
}

func reloadPaper(c *gin.Context, userID, paperID uint) (*papers.Paper, bool) {
	var paper papers.Paper
	err := preloadPaper(database.DB.Where("user_id = ?", userID)).
		First(&paper, paperID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload paper"})
		return nil, false
	}
	return &paper, true
}

// applyReadAt keeps the read timestamp in sync with status transitions.
func applyReadAt(paper *papers.Paper, oldStatus, newStatus reading.Status) {
	if newStatus == reading.StatusRead && oldStatus != reading.StatusRead {
		now := time.Now().UTC()
		paper.ReadAt = &now
	} else if newStatus != reading.StatusRead {
		paper.ReadAt = nil
	}
}

type authorInput struct {
	Name  string
	Slug  string
	ORCID string
}

func namesToAuthorInputs(names []string) []authorInput {
	inputs := make([]authorInput, 0, len(names))
	for _, name := range names {
		inputs = append(inputs, authorInput{Name: name})
	}
	return inputs
}

// replaceAuthorLinks swaps the paper's author list for the given one,
// resolving each entry to a durable author row.
func replaceAuthorLinks(tx *gorm.DB, userID, paperID uint, inputs []authorInput) error {
	if err := tx.Where("paper_id = ?", paperID).Delete(&papers.PaperAuthor{}).Error; err != nil {
		return err
	}

	for position, input := range inputs {
		author, err := authors.Resolve(tx, userID, input.Name, input.ORCID, input.Slug)
		if err != nil {
			return err
		}
		link := papers.PaperAuthor{
			PaperID:  paperID,
			AuthorID: author.ID,
			Position: position,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
