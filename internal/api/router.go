package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rahma-center/community-api/internal/api/handler"
	"github.com/rahma-center/community-api/internal/api/middleware"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	mediaHandler *handler.MediaHandler,
	streamHandler *handler.StreamHandler,
	mode string,
	cors middleware.CORSConfig,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		media := api.Group("/media")
		{
			media.GET("", mediaHandler.ListMedia)
			media.GET("/stream/:id", streamHandler.StreamImage)
			media.GET("/stream-video/:id", streamHandler.StreamVideo)
			media.GET("/:id", mediaHandler.GetMedia)
		}
	}

	return r
}
