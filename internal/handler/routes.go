package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes binds the catalog endpoints under the API prefix. The
// fixed /get/* and /gallery/* paths are registered before the :id routes
// so they are not captured as ids.
func RegisterRoutes(app *fiber.App, prefix string, products *ProductHandler, categories *CategoryHandler, users *UserHandler) {
	api := app.Group(prefix)

	p := api.Group("/products")
	p.Get("/", products.GetProducts)
	p.Get("/get/count", products.CountProducts)
	p.Get("/get/featured/:count?", products.FeaturedProducts)
	p.Post("/", products.CreateProduct)
	p.Put("/gallery/:id", products.UpdateGallery)
	p.Get("/:id", products.GetProduct)
	p.Put("/:id", products.UpdateProduct)
	p.Delete("/:id", products.DeleteProduct)

	cat := api.Group("/categories")
	cat.Get("/", categories.GetCategories)
	cat.Get("/:id", categories.GetCategory)
	cat.Post("/", categories.CreateCategory)
	cat.Put("/:id", categories.UpdateCategory)
	cat.Delete("/:id", categories.DeleteCategory)

	u := api.Group("/users")
	u.Post("/register", users.Register)
	u.Post("/login", users.Login)
	u.Get("/", users.GetUsers)
}
