package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

// SubmitFeedback handles POST /feedback/:eventId. The rating is bound as a
// raw JSON value so the service can apply its own numeric validation rather
// than gin rejecting the request shape.
func SubmitFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		eventID, ok := parseObjectID(c, "eventId")
		if !ok {
			return
		}

		userID, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		var body struct {
			Rating  any    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		result, err := fs.SubmitFeedback(c.Request.Context(), eventID, userID, body.Rating, body.Comment)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "Feedback saved successfully"))
	}
}

// MyEventFeedback returns the caller's own feedback for an event; data is
// null when they have not submitted any.
func MyEventFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		eventID, ok := parseObjectID(c, "eventId")
		if !ok {
			return
		}

		userID, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		fb, err := fs.GetMyFeedback(c.Request.Context(), eventID, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(fb, ""))
	}
}

func GetEventFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseObjectID(c, "eventId")
		if !ok {
			return
		}

		list, err := fs.GetEventFeedback(c.Request.Context(), eventID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(list, ""))
	}
}
