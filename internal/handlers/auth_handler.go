package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		result, err := u.Signup(c.Request.Context(), body.Name, body.Email, body.Password, body.Role)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(result, "User registered successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		result, err := u.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "Login successful"))
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

func SendOtp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		if err := u.SendOtp(c.Request.Context(), body.Email); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "OTP sent successfully"))
	}
}

func VerifyOtp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email string `json:"email"`
			Otp   string `json:"otp"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		if err := u.VerifyOtp(body.Email, body.Otp); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "OTP verified successfully"))
	}
}

func ResetPassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email       string `json:"email"`
			NewPassword string `json:"new_password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		if err := u.ResetPassword(c.Request.Context(), body.Email, body.NewPassword); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Password reset successful"))
	}
}
