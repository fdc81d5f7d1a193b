package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/importer"
	"github.com/paycycle/backend/internal/importer/parser/bankcsv"
	"github.com/paycycle/backend/internal/models"
)

// RegisterImportRoutes registers the routes for imports with the
// RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", ImportTransactions)
}

func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// ImportResponse is the response for an import request.
type ImportResponse struct {
	Data  *importer.Result `json:"data"`  // The import counts
	Error *string          `json:"error"` // The error, if any occurred
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ImportTransactions imports a CSV bank export. Rows matching an
// already imported transaction are skipped, rows matching an active
// category rule are categorized on the way in.
func ImportTransactions(c *gin.Context) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}
	defer f.Close()

	rows, skipped, err := bankcsv.Parse(f)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	result, err := importer.Create(models.DB, rows)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	result.Skipped += skipped

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}
