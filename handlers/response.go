package handlers

import "github.com/gin-gonic/gin"

// respond writes the {success, data, message} envelope every endpoint uses.
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": status < 400,
		"data":    data,
		"message": message,
	})
}

// respondError writes a failure envelope without a data payload.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondFieldErrors writes a failure envelope with a field-level error map.
func respondFieldErrors(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"errors":  fields,
	})
}

// pagination is the list-endpoint metadata block.
func pagination(page, perPage int, total int64) gin.H {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}
	lastPage := (total + int64(perPage) - 1) / int64(perPage)
	if lastPage < 1 {
		lastPage = 1
	}
	return gin.H{
		"current_page": page,
		"last_page":    lastPage,
		"per_page":     perPage,
		"total":        total,
	}
}
