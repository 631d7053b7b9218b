package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func MyRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		userID, err := primitive.ObjectIDFromHex(user.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id in token"))
			return
		}

		regs, err := rs.ListMine(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"registrations": regs}, ""))
	}
}

func ListRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		regs, err := rs.ListAll(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"registrations": regs}, ""))
	}
}

func ApproveRegistration(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		reg, err := rs.Approve(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reg, "Registration approved"))
	}
}

func RejectRegistration(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		reg, err := rs.Reject(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reg, "Registration rejected"))
	}
}

func DeleteRegistration(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := parseObjectID(c, "id")
		if !ok {
			return
		}

		if err := rs.Delete(c.Request.Context(), id, user); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Registration deleted"))
	}
}
