package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondDrinks renders the success envelope shared by the read, create and
// update routes. POST passes a single long view, the list routes pass a
// slice; the envelope is the same either way.
func respondDrinks(c *gin.Context, drinks interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"drinks":  drinks,
	})
}

func respondDeleted(c *gin.Context, id int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"delete":  id,
	})
}
