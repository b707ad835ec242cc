package response

import "github.com/gin-gonic/gin"

// Error is an error that knows which HTTP status it should be reported with.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func NewError(code int, message string) Error {
	return Error{
		Code:    code,
		Message: message,
	}
}

// Respond writes e as an error envelope.
func (e Error) Respond(c *gin.Context) {
	ErrorResponse(c, e.Code, e.Message)
}
