package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
)

// URLMiddleware stores the request base URL in the context so that
// controllers can build absolute links.
func URLMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), httputil.RequestHost(c))
		c.Next()
	}
}
