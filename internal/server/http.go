package server

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/order"
	"github.com/muurk/orderdesk/internal/version"
)

//go:embed web/index.html
var indexHTML []byte

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/", s.index)
	router.GET("/ws", s.handleWebSocket)

	v1 := router.Group("/api/v1")
	// The page and /ws are same-origin; only the API is opened up.
	if len(s.config.CORSOrigins) > 0 {
		v1.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	{
		v1.GET("/health", s.healthCheck)
		v1.GET("/catalog", s.listCatalog)
		v1.GET("/catalog/:brand", s.listModels)
		v1.POST("/orders/preview", s.previewOrder)
		v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return router
}

// requestLogger logs each request through the zap logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logging.LogHTTPRequest(
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Request.UserAgent(),
		)
	}
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Order desk is running",
		"version":  version.Version,
		"sessions": s.ActiveSessions(),
	})
}

func (s *Server) listCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.config.Catalog.Entries(),
	})
}

// listModels returns the models of one brand; unknown brands yield an
// empty list, the same answer the form gets.
func (s *Server) listModels(c *gin.Context) {
	brand := c.Param("brand")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"brand":  brand,
			"known":  s.config.Catalog.HasBrand(brand),
			"models": s.config.Catalog.ModelsFor(brand),
		},
	})
}

// previewOrder validates and formats an order without dispatching it.
func (s *Server) previewOrder(c *gin.Context) {
	var form order.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be a JSON order form")
		return
	}

	ctrl := order.NewController(order.Options{
		Catalog:   s.config.Catalog,
		Formatter: s.config.Formatter,
	})
	for _, f := range order.Fields {
		ctrl.UpdateField(f, form.Get(f))
	}
	res := ctrl.Submit()

	if !res.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Order validation failed",
				"fields":  res.Errors.Messages(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":      res.Message,
			"mobile_link":  s.config.Link.WithText(res.Message),
			"desktop_link": s.config.Link.Plain(),
		},
	})
}
