package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopapi/internal/apperr"
	"shopapi/internal/service"
)

// Every response uses the same envelope: {success, message?, data?,
// pagination?}.
type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, data interface{}, p service.Pagination) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

// respondError maps the error taxonomy to a status. Server faults get a
// generic message unless the API runs in development mode.
func respondError(c *gin.Context, route string, err error, development bool) {
	status := apperr.HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		log.Printf("[%s] [ERROR] %v", route, err)
		if !development {
			message = "Internal Server Error"
		}
		var storeErr *apperr.StoreError
		if errors.As(err, &storeErr) {
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, envelope{Success: false, Message: message})
}
