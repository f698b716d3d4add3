package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/service"
)

type UserHandler struct {
	identity *service.Identity
}

func NewUserHandler(identity *service.Identity) *UserHandler {
	return &UserHandler{identity: identity}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		EmailOrPhone string `json:"emailOrPhone"`
		Password     string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	token, err := h.identity.Register(c.Request.Context(), req.Name, req.EmailOrPhone, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		EmailOrPhone string `json:"emailOrPhone"`
		Password     string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	token, err := h.identity.Login(c.Request.Context(), req.EmailOrPhone, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (h *UserHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	token, err := h.identity.AdminLogin(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.identity.Profile(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"user": profileView(user)})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Password    string `json:"password"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), c.GetString(userIDKey), service.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "user updated successfully", "user": profileView(user)})
}

func profileView(u *domain.User) gin.H {
	view := gin.H{"name": u.Name}
	if u.Email != "" {
		view["email"] = u.Email
	}
	if u.Phone != "" {
		view["phone"] = u.Phone
	}
	return view
}
