package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LordArcquedor/Evnt/internal/auth/dto"
	"github.com/LordArcquedor/Evnt/internal/auth/service"
	autherror "github.com/LordArcquedor/Evnt/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler translates HTTP requests into facade calls and facade
// errors into the plain-text wire contract. Parameters arrive as form or
// query values; bodies are the literal French strings the clients expect.
type AuthHandler struct {
	authService  *service.AuthService
	tokenService service.TokenGenerator
}

func NewAuthHandler(authService *service.AuthService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

func (h *AuthHandler) Inscription(c *fiber.Ctx) error {
	input := dto.RegisterInput{
		Pseudo: c.FormValue("pseudo"),
		Mdp:    c.FormValue("mdp"),
		Email:  c.FormValue("eMail"),
	}
	if input.Pseudo == "" || input.Mdp == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Paramètres manquants")
	}

	_, err := h.authService.Register(c.UserContext(), input)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).SendString("Compte créé !")
	case errors.Is(err, autherror.ErrPseudoAndEmailAlreadyTaken):
		return c.Status(fiber.StatusConflict).SendString("Email ou pseudo déjà existante")
	case errors.Is(err, autherror.ErrPseudoAlreadyTaken):
		return c.Status(fiber.StatusConflict).SendString(fmt.Sprintf("Pseudo %s déjà pris", input.Pseudo))
	case errors.Is(err, autherror.ErrEmailAlreadyTaken):
		return c.Status(fiber.StatusConflict).SendString(fmt.Sprintf("Email %s déjà existante", input.Email))
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

func (h *AuthHandler) Connexion(c *fiber.Ctx) error {
	input := dto.LoginInput{
		Pseudo: c.FormValue("pseudo"),
		Mdp:    c.FormValue("mdp"),
	}
	if input.Pseudo == "" || input.Mdp == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Paramètres manquants")
	}

	token, err := h.authService.Login(c.UserContext(), input)
	switch {
	case err == nil:
		bearer := "Bearer " + token.AccessToken
		c.Set(fiber.HeaderAuthorization, bearer)
		return c.Status(fiber.StatusOK).SendString(bearer)
	case errors.Is(err, autherror.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).SendString("Mauvais identifiant !")
	case errors.Is(err, autherror.ErrWrongPassword):
		return c.Status(fiber.StatusUnauthorized).SendString("Mauvais mdp !")
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

func (h *AuthHandler) Deconnexion(c *fiber.Ctx) error {
	pseudo := c.FormValue("pseudo")
	if pseudo == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Paramètres manquants")
	}

	err := h.authService.Logout(c.UserContext(), pseudo)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).SendString(fmt.Sprintf("Déconnexion de %s faite !", pseudo))
	case errors.Is(err, autherror.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).SendString("Utilisateur inexistant")
	case errors.Is(err, autherror.ErrAlreadyDisconnected):
		// Literal kept as-is from the existing clients.
		return c.Status(fiber.StatusForbidden).SendString("Déjà connecté !")
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

func (h *AuthHandler) ModificationPseudo(c *fiber.Ctx) error {
	input := dto.RenameInput{
		Pseudo:        c.FormValue("pseudo"),
		NouveauPseudo: c.FormValue("nouveauPseudo"),
	}
	if input.Pseudo == "" || input.NouveauPseudo == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Paramètres manquants")
	}

	err := h.authService.RenamePseudo(c.UserContext(), input)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).
			SendString(fmt.Sprintf("Pseudo : %s changé en :%s !", input.Pseudo, input.NouveauPseudo))
	case errors.Is(err, autherror.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).SendString("Mauvais pseudo !")
	case errors.Is(err, autherror.ErrPseudoAlreadyTaken):
		return c.Status(fiber.StatusConflict).SendString(fmt.Sprintf("Pseudo %s déjà pris", input.NouveauPseudo))
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

// Verification lets sibling services check a bearer token and recover the
// pseudo it was issued for.
func (h *AuthHandler) Verification(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	claims, err := h.tokenService.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.Status(fiber.StatusOK).SendString(claims.Pseudo)
}
