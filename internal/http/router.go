// Package http wires the REST surface: user and admin auth gates, the
// shared response envelope and the route table.
package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"spicemart-backend/internal/config"
	"spicemart-backend/pkg/auth"
)

type Handlers struct {
	Users    *UserHandler
	Cart     *CartHandler
	Products *ProductHandler
	Orders   *OrderHandler
}

func NewRouter(cfg config.Config, tokens *auth.Tokens, h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		AllowCredentials: true,
	}))

	authUser := AuthRequired(tokens)
	authAdmin := AdminRequired(tokens, cfg.AdminEmail, cfg.AdminPassword)

	user := r.Group("/user")
	{
		user.POST("/register", h.Users.Register)
		user.POST("/login", h.Users.Login)
		user.POST("/admin", h.Users.AdminLogin)
		user.GET("/me", authUser, h.Users.Me)
		user.PUT("/update", authUser, h.Users.Update)
	}

	cart := r.Group("/cart", authUser)
	{
		cart.GET("/get", h.Cart.Get)
		cart.POST("/add", h.Cart.Add)
		cart.POST("/update", h.Cart.Update)
		cart.POST("/clear", h.Cart.Clear)
	}

	product := r.Group("/product")
	{
		product.GET("/list", h.Products.List)
		product.POST("/single", h.Products.Single)
		product.POST("/add", authAdmin, h.Products.Add)
		product.POST("/update", authAdmin, h.Products.Update)
		product.POST("/remove", authAdmin, h.Products.Remove)
	}

	order := r.Group("/order")
	{
		order.POST("/place", authUser, h.Orders.Place)
		order.POST("/userorders", authUser, h.Orders.UserOrders)
		order.POST("/list", authAdmin, h.Orders.ListAll)
		order.POST("/status", authAdmin, h.Orders.UpdateStatus)
		order.POST("/cancel", authAdmin, h.Orders.Cancel)
	}

	// gin.Static only accepts a path prefix; an absolute MEDIA_BASE_URL
	// means uploads are served elsewhere (e.g. a CDN) and nothing is
	// mounted here.
	if cfg.MediaDir != "" && strings.HasPrefix(cfg.MediaBaseURL, "/") {
		r.Static(cfg.MediaBaseURL, cfg.MediaDir)
	}
	return r
}
