package authors

import (
	"errors"
	"net/http"
	"strconv"

	"paper-tracker/database"
	"paper-tracker/internal/domain/authors"
	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthorWithCount struct {
	authors.Author
	PaperCount int64 `json:"paper_count"`
}

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

// GET /authors
func GetAuthors(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []authors.Author
	err := database.DB.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load authors"})
		return
	}

	var counts []struct {
		AuthorID uint
		Count    int64
	}
	err = database.DB.Model(&papers.PaperAuthor{}).
		Select("paper_authors.author_id, COUNT(*) AS count").
		Joins("JOIN authors ON authors.id = paper_authors.author_id").
		Where("authors.user_id = ?", userID).
		Group("paper_authors.author_id").
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper counts"})
		return
	}

	countsByID := make(map[uint]int64, len(counts))
	for _, row := range counts {
		countsByID[row.AuthorID] = row.Count
	}

	out := make([]AuthorWithCount, 0, len(list))
	for _, a := range list {
		out = append(out, AuthorWithCount{Author: a, PaperCount: countsByID[a.ID]})
	}

	c.JSON(http.StatusOK, gin.H{"authors": out})
}

// GET /authors/:id?status=
func GetAuthor(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author id"})
		return
	}

	var author authors.Author
	err = database.DB.Where("user_id = ?", userID).First(&author, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load author"})
		}
		return
	}

	q := database.DB.Model(&papers.Paper{}).
		Joins("JOIN paper_authors ON paper_authors.paper_id = papers.id").
		Where("papers.user_id = ? AND paper_authors.author_id = ?", userID, author.ID).
		Order("papers.order_index ASC")

	// An unknown status string filters nothing, matching a lenient query
	// param contract.
	if s := c.Query("status"); s != "" {
		if status, serr := reading.ParseStatus(s); serr == nil {
			q = q.Where("papers.status = ?", status)
		}
	}

	var authored []papers.Paper
	if err := q.Preload("Category").Find(&authored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"author": author, "papers": authored})
}
