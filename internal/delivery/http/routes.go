package http

import (
	"embed"
	"html/template"

	"github.com/ebaylookup/backend/config"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// multipartOverhead leaves room for form fields and boundaries around the image
const multipartOverhead = 1 << 20

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	uploadLimit := BodyLimitMiddleware(cfg.Upload.MaxBytes + multipartOverhead)

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Demo page
	router.GET("/", handler.Index)
	router.POST("/search", handler.SearchPage)
	router.POST("/search/image", uploadLimit, handler.SearchImagePage)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		listings := v1.Group("/listings")
		{
			listings.POST("/search", handler.SearchListings)
			listings.POST("/search/image", uploadLimit, handler.SearchListingsByImage)
		}

		v1.POST("/barcode/decode", uploadLimit, handler.DecodeBarcode)
	}

	return router
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"seq": func(from, to int) []int {
			s := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				s = append(s, i)
			}
			return s
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
