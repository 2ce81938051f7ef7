package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/auth")
	auth.Post("/inscription", h.Inscription)
	auth.Post("/connexion", h.Connexion)
	auth.Post("/deconnexion", h.Deconnexion)
	auth.Get("/verification", h.Verification)

	// Historical route, lives outside the /auth prefix.
	app.Patch("/modification-pseudo", h.ModificationPseudo)
}
