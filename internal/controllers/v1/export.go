package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
)

var backendVersion string

// RegisterExportRoutes registers the routes for exports with the
// RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup, version string) {
	backendVersion = version

	{
		r.OPTIONS("", OptionsExport)
		r.GET("", GetExport)
	}
}

// ExportResponse is the response for an export request.
type ExportResponse struct {
	Version      string                     `json:"version" example:"1.0.0"`  // The version of the backend the export was made with
	Data         map[string]json.RawMessage `json:"data"`                     // The exported resources, keyed by model name
	CreationTime time.Time                  `json:"creationTime"`             // Time the export was created
}

func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExport exports all resources for the instance.
func GetExport(c *gin.Context) {
	resources := make(map[string]json.RawMessage)

	for _, model := range models.Registry {
		b, err := model.Export()
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		resources[reflect.TypeOf(model).Name()] = b
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      backendVersion,
		Data:         resources,
		CreationTime: time.Now(),
	})
}
