package routes

import (
	"pharmacy-api/handlers"
	"pharmacy-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, auth *middleware.Authenticator, uploadDir string) {
	// ── Auth ───────────────────────────────────────────────────────
	api := r.Group("/api")
	{
		api.POST("/auth/signup", handlers.Signup(auth))
		api.POST("/auth/signin", handlers.Signin(auth))
	}

	// ── Profile ────────────────────────────────────────────────────
	profile := r.Group("/api/profile")
	profile.Use(auth.RequireAuth())
	{
		profile.GET("/get_profile", handlers.GetProfile)
		profile.POST("/create_profile", handlers.CreateProfile)
		profile.PUT("/edit_profile", handlers.EditProfile)
		profile.POST("/upload_image", handlers.UploadProfileImage(uploadDir))
	}

	// ── Pharmacy catalog ───────────────────────────────────────────
	pharmacy := r.Group("/api/pharmacy")
	{
		pharmacy.GET("/get_all/:page", handlers.GetAllPharmacies)
		pharmacy.GET("/get_by_id/:id", handlers.GetPharmacyByID)
		pharmacy.GET("/get_reviews/:id", handlers.GetPharmacyReviews)
		pharmacy.GET("/search_pharmacy/:name", handlers.SearchPharmacy)
		pharmacy.GET("/search_by_location/:location", handlers.SearchByLocation)
		pharmacy.GET("/filter_by_rates/:name", handlers.FilterByRates)

		pharmacy.GET("/filter_by_location/:name", auth.RequireAuth(), handlers.FilterByLocation)
		pharmacy.POST("/add_edit_review", auth.RequireAuth(), handlers.AddEditReview)
		pharmacy.DELETE("/delete_review/:pharmacy_id", auth.RequireAuth(), handlers.DeleteReview)
	}

	// ── Cart ───────────────────────────────────────────────────────
	cart := r.Group("/api/cart")
	cart.Use(auth.RequireAuth())
	{
		cart.GET("/get_cart", handlers.GetCart)
		cart.POST("/add_increment_to_cart/:drug_id", handlers.AddIncrementToCart)
		cart.PUT("/decrease_from_cart/:drug_id", handlers.DecreaseFromCart)
		cart.PUT("/remove_from_cart/:drug_id", handlers.RemoveFromCart)
		cart.PUT("/checkout", handlers.Checkout)
	}

	// ── Staff ──────────────────────────────────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(auth.RequireAuth(), middleware.RequireStaff())
	{
		staff.POST("/pharmacy", handlers.CreatePharmacy)
		staff.PUT("/pharmacy/:id", handlers.UpdatePharmacy)
		staff.POST("/pharmacy/:id/drugs", handlers.AddDrug)
		staff.PUT("/pharmacy/:id/hours", handlers.SetOpeningHours)
		staff.PUT("/drugs/:id", handlers.UpdateDrug)
		staff.DELETE("/drugs/:id", handlers.DeleteDrug)

		staff.GET("/carts", handlers.ListCarts)
		staff.PUT("/carts/:id/status", handlers.UpdateCartStatus)
		staff.GET("/users", handlers.ListUsers)
	}
}
