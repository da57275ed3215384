package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/gin-gonic/gin"
)

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input loginInput
	if !bindJSON(c, "handlers", "Login", &input) {
		return
	}

	user, err := models.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.JwtGenerate(user.ID, user.Name, string(user.Role))
	if err != nil {
		respondError(c, "handlers", "Login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func RegisterUser(c *gin.Context) {
	var input models.NewUser
	if !bindJSON(c, "handlers", "RegisterUser", &input) {
		return
	}
	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "RegisterUser", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Session returns the caller's resolved profile.
func Session(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)
	user, err := models.GetUser(ctx, userId)
	if err != nil {
		respondError(c, "handlers", "Session", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func ListUsers(c *gin.Context) {
	users, err := models.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
