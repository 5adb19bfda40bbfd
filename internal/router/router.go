package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/weibaohui/pagecraft/config"
	"github.com/weibaohui/pagecraft/internal/handler"
)

func Setup(
	cfg *config.Config,
	componentHandler *handler.ComponentHandler,
	templateHandler *handler.TemplateHandler,
	instanceHandler *handler.InstanceHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	// 渲染结果体积与节点数成正比，统一压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		components := api.Group("/components")
		{
			components.GET("", componentHandler.List)
			components.GET("/categories", componentHandler.ListCategories)
			components.GET("/:type", componentHandler.Get)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", templateHandler.Create)
			templates.POST("/validate", templateHandler.Validate)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.POST("/:id/render", instanceHandler.Render)
			templates.GET("/:id/instances", instanceHandler.ListByTemplate)
		}

		instances := api.Group("/instances")
		{
			instances.GET("/stats", instanceHandler.Stats)
			instances.GET("/:id", instanceHandler.Get)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
