package webapi

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coffeebar-server-go/internal/domain/auth"
	"coffeebar-server-go/internal/platform/errors"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// respondError maps a failure to one of the three error envelopes. Auth
// errors render their own payload with their status; a not-found kind maps
// to 404; everything else collapses to 422 so internal detail never reaches
// the client.
func (s *DrinksService) respondError(c *gin.Context, err error) {
	var aerr *auth.Error
	if stderrors.As(err, &aerr) {
		c.JSON(aerr.Status, aerr)
		return
	}

	if errors.IsKind(err, errors.KindNotFound) {
		respondNotFound(c)
		return
	}

	s.logger.Error("request failed",
		"request_id", c.GetString("request_id"),
		"path", c.Request.URL.Path,
		"error", err,
	)
	respondUnprocessable(c)
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody{
		Success: false,
		Error:   http.StatusNotFound,
		Message: "resource not found",
	})
}

func respondUnprocessable(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, errorBody{
		Success: false,
		Error:   http.StatusUnprocessableEntity,
		Message: "unprocessable",
	})
}
