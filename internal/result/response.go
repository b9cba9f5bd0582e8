package result

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Envelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope[any]{Success: true, Data: data})
}

func OKWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope[any]{Success: true, Data: data, Message: message})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope[any]{Success: true, Data: data})
}

// Fail renders err with the status its kind maps to.
func Fail(c *gin.Context, err error) {
	body := Envelope[any]{Error: PublicMessage(err)}
	if e, ok := As(err); ok && len(e.Fields) > 0 {
		body.Details = e.Fields
	}
	c.JSON(HTTPStatus(err), body)
}

// Abort writes a fixed error message and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope[any]{Error: message})
}
