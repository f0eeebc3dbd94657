package routes

import (
	"shop-api/controllers"
	"shop-api/middleware"
	"shop-api/models"
	"shop-api/services"

	"github.com/gin-gonic/gin"
)

// Register sets up all API routes.
func Register(
	r *gin.Engine,
	users *controllers.UserController,
	catalog *controllers.CatalogController,
	carts *controllers.CartController,
	admin *controllers.AdminCatalogController,
	tokens *services.TokenService,
	authLimiter *middleware.RateLimiter,
) {
	r.POST("/users", users.Register)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(authLimiter))
	auth.POST("/token/login", users.Login)

	categories := r.Group("/categories")
	{
		categories.GET("", catalog.ListCategories)
		categories.GET("/:category_slug", catalog.GetCategory)
		categories.GET("/:category_slug/:subcategory_slug", catalog.GetSubCategoryProducts)
		categories.GET("/:category_slug/:subcategory_slug/:product_slug", catalog.ProductRedirect)
	}

	products := r.Group("/products")
	{
		products.GET("", catalog.ListProducts)
		products.GET("/:slug", catalog.GetProduct)

		toCart := products.Group("/:slug/to_cart")
		toCart.Use(middleware.RequireAuth(tokens))
		toCart.POST("", carts.AddToCart)
		toCart.DELETE("", carts.RemoveFromCart)
	}

	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth(tokens))
	{
		cart.GET("", carts.GetCart)
		cart.DELETE("/clear", carts.ClearCart)
		cart.PUT("/:item_id", carts.UpdateItem)
		cart.DELETE("/:item_id", carts.RemoveItem)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(tokens), middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.POST("/categories", admin.CreateCategory)
		adminGroup.PUT("/categories/:slug", admin.UpdateCategory)
		adminGroup.DELETE("/categories/:slug", admin.DeleteCategory)
		adminGroup.POST("/subcategories", admin.CreateSubCategory)
		adminGroup.PUT("/subcategories/:slug", admin.UpdateSubCategory)
		adminGroup.DELETE("/subcategories/:slug", admin.DeleteSubCategory)
		adminGroup.POST("/products", admin.CreateProduct)
		adminGroup.PUT("/products/:slug", admin.UpdateProduct)
		adminGroup.DELETE("/products/:slug", admin.DeleteProduct)
	}
}
