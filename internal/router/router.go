package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/RsrRuso/cocktailsop-sub017/internal/costing"
	"github.com/RsrRuso/cocktailsop-sub017/internal/production"
)

// New assembles the HTTP surface. Auth/session handling belongs to an
// upstream gateway and is deliberately absent here.
func New(costingHandler *costing.Handler, productionHandler *production.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	costingGroup := r.Group("/costing")
	{
		costingGroup.POST("/compute", costingHandler.Compute)
		costingGroup.POST("/yield", costingHandler.Yield)
		costingGroup.POST("/invalidate", costingHandler.Invalidate)
	}

	batches := r.Group("/batches")
	{
		batches.POST("", productionHandler.Submit)
		batches.POST("/scale", productionHandler.Scale)
		batches.GET("", productionHandler.List)
		batches.GET("/summary", productionHandler.Summary)
		batches.GET("/:id", productionHandler.Get)
		batches.PUT("/:id", productionHandler.Update)
		batches.DELETE("/:id", productionHandler.Delete)
	}

	r.GET("/losses", productionHandler.Losses)

	return r
}
