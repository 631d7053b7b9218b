package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

// currentUser pulls the identity the auth middleware stored on the context.
func currentUser(c *gin.Context) (*helpers.SessionUser, bool) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	user, ok := value.(*helpers.SessionUser)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return user, true
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	raw := helpers.StringTrim(c.Param(param))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid id format"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are deferred to the ErrorHandler middleware as internal
// failures.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(validationErr.Msg))
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(notFoundErr.Error()))
		return
	}

	var futureErr *services.FutureEventError
	if errors.As(err, &futureErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":         false,
			"error":           "you can only give feedback for past events",
			"eventParsedDate": futureErr.Occurrence.Format(time.RFC3339Nano),
		})
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"success":            false,
			"error":              permErr.Msg,
			"registrationFound":  permErr.RegistrationFound,
			"registrationStatus": permErr.RegistrationStatus,
		})
		return
	}

	_ = c.Error(err)
	c.Abort()
}
