// internal/api/response.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the body of every /v1 response that is not a ResultPage.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Data: message})
}

// respondError maps err onto its status and public message and writes it.
func (s *server) respondError(c *gin.Context, err error) {
	status, message := s.errors.HandleRequestError(routeOf(c), requestIDOf(c), err)
	fail(c, status, message)
}
