package response

import "github.com/gin-gonic/gin"

// Envelope is the success shape shared with the client facade.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}
