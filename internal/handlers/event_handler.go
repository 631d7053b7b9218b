package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		createdBy, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), &event, createdBy)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Event created successfully"))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		var fields map[string]any
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		delete(fields, "_id")
		delete(fields, "id")
		delete(fields, "createdBy")
		delete(fields, "createdAt")

		updated, err := es.UpdateEvent(c.Request.Context(), id, fields)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		if err := es.DeleteEvent(c.Request.Context(), id); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted"))
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		events, err := es.ListEvents(c.Request.Context(), status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"events": events}, ""))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func RegisterForEvent(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		eventID, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		userID, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		// Details arrive either nested under registrationDetails or flat.
		var body struct {
			Nested      *models.RegistrationDetails `json:"registrationDetails"`
			College     string                      `json:"college"`
			Department  string                      `json:"department"`
			YearOfStudy string                      `json:"year_of_study"`
		}
		_ = c.ShouldBindJSON(&body)
		details := models.RegistrationDetails{
			College:     body.College,
			Department:  body.Department,
			YearOfStudy: body.YearOfStudy,
		}
		if body.Nested != nil {
			details = *body.Nested
		}

		reg, err := rs.Register(c.Request.Context(), eventID, userID, details)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reg, "Registered successfully!"))
	}
}

func CancelRegistration(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		eventID, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		userID, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		removed, err := rs.Cancel(c.Request.Context(), eventID, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(removed, "Registration cancelled"))
	}
}
