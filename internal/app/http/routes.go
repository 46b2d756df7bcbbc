package routes

import (
	authapi "paper-tracker/internal/api/auth"
	authorsapi "paper-tracker/internal/api/authors"
	categoriesapi "paper-tracker/internal/api/categories"
	effortapi "paper-tracker/internal/api/effort"
	papersapi "paper-tracker/internal/api/papers"
	textbooksapi "paper-tracker/internal/api/textbooks"
	"paper-tracker/internal/app/http/middleware"

	"paper-tracker/database"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/login", authapi.Login)
	r.POST("/logout", authapi.Logout)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.SessionAuth(), middleware.SanitizeInput())

	auth.GET("/papers", papersapi.GetPapers)
	auth.POST("/papers", papersapi.CreatePaper)
	auth.POST("/papers/reorder", papersapi.ReorderPapers)
	auth.POST("/papers/fetch-arxiv", papersapi.FetchArxiv)
	auth.GET("/papers/:id", papersapi.GetPaper)
	auth.PUT("/papers/:id", papersapi.UpdatePaper)
	auth.DELETE("/papers/:id", papersapi.DeletePaper)
	auth.POST("/papers/:id/like", papersapi.LikePaper)
	auth.POST("/papers/:id/refresh-arxiv", papersapi.RefreshArxiv)

	auth.GET("/papers/:id/sources", papersapi.GetSources)
	auth.POST("/papers/:id/sources", papersapi.AddSource)
	auth.DELETE("/papers/:id/sources/:sourceId", papersapi.DeleteSource)

	auth.GET("/textbooks", textbooksapi.GetTextbooks)
	auth.POST("/textbooks", textbooksapi.CreateTextbook)
	auth.POST("/textbooks/reorder", textbooksapi.ReorderTextbooks)
	auth.POST("/textbooks/fetch-isbn", textbooksapi.FetchISBN)
	auth.GET("/textbooks/:id", textbooksapi.GetTextbook)
	auth.PUT("/textbooks/:id", textbooksapi.UpdateTextbook)
	auth.DELETE("/textbooks/:id", textbooksapi.DeleteTextbook)
	auth.POST("/textbooks/:id/like", textbooksapi.LikeTextbook)

	auth.GET("/categories", categoriesapi.GetCategories)
	auth.POST("/categories", categoriesapi.CreateCategory)
	auth.PUT("/categories/:id", categoriesapi.UpdateCategory)
	auth.DELETE("/categories/:id", categoriesapi.DeleteCategory)

	auth.GET("/authors", authorsapi.GetAuthors)
	auth.GET("/authors/:id", authorsapi.GetAuthor)

	auth.GET("/effort", effortapi.GetLogs)
	auth.POST("/effort", effortapi.CreateLog)
}
