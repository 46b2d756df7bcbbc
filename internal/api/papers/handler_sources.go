package papers

import (
	"errors"
	"net/http"
	"strconv"

	"paper-tracker/database"
	"paper-tracker/internal/domain/papers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /papers/:id/sources
func GetSources(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	var sources []papers.DiscoverySource
	err := database.DB.Where("paper_id = ?", paper.ID).
		Order("created_at DESC").
		Find(&sources).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

// POST /papers/:id/sources
func AddSource(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	var req SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sourceType, err := papers.ParseDiscoveryType(req.SourceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source := papers.DiscoverySource{
		PaperID:    paper.ID,
		SourceType: sourceType,
	}
	switch sourceType {
	case papers.DiscoveryPaper:
		if req.SourceArxivID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "source_arxiv_id required for PAPER sources"})
			return
		}
		source.SourceArxivID = &req.SourceArxivID
		source.SourcePaperID = resolveSourcePaper(database.DB, userID, req.SourceArxivID)
	case papers.DiscoveryText:
		if req.SourceText == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "source_text required for TEXT sources"})
			return
		}
		source.SourceText = &req.SourceText
	}

	if err := database.DB.Create(&source).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add source"})
		return
	}

	c.JSON(http.StatusCreated, source)
}

// DELETE /papers/:id/sources/:sourceId
func DeleteSource(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	paper, ok := findPaper(c, userID)
	if !ok {
		return
	}

	sourceID, err := strconv.ParseUint(c.Param("sourceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source id"})
		return
	}

	var source papers.DiscoverySource
	err = database.DB.Where("id = ? AND paper_id = ?", uint(sourceID), paper.ID).
		First(&source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load source"})
		}
		return
	}

	if err := database.DB.Delete(&source).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete source"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
