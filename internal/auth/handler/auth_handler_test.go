package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/LordArcquedor/Evnt/internal/auth/crypto"
	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	"github.com/LordArcquedor/Evnt/internal/auth/handler"
	"github.com/LordArcquedor/Evnt/internal/auth/service"
	"github.com/LordArcquedor/Evnt/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository, *mocks.MockTokenGenerator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	authService := service.NewAuthService(mockRepo, crypto.NewBcryptHasher(), mockTokenService)
	authHandler := handler.NewAuthHandler(authService, mockTokenService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return app, mockRepo, mockTokenService
}

func formRequest(method, target string, vals url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestInscription(t *testing.T) {
	vals := url.Values{"pseudo": {"utilisateur"}, "mdp": {"motdepasse"}, "eMail": {"utilisateur@example.com"}}

	t.Run("created", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(nil, nil)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "utilisateur@example.com").Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Compte créé !", body(t, resp))
	})

	t.Run("pseudo taken", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		existing := &domain.User{ID: "u1", Pseudo: "utilisateur"}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(existing, nil)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "utilisateur@example.com").Return(nil, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Pseudo utilisateur déjà pris", body(t, resp))
	})

	t.Run("email taken", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		existing := &domain.User{ID: "u1", Email: "utilisateur@example.com"}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(nil, nil)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "utilisateur@example.com").Return(existing, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email utilisateur@example.com déjà existante", body(t, resp))
	})

	t.Run("both taken reports the combined body", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		existing := &domain.User{ID: "u1", Pseudo: "utilisateur", Email: "utilisateur@example.com"}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(existing, nil)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "utilisateur@example.com").Return(existing, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email ou pseudo déjà existante", body(t, resp))
	})

	t.Run("missing parameters", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", url.Values{"pseudo": {"utilisateur"}}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("infrastructure failure", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(nil, errors.New("db down"))

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/inscription", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestConnexion(t *testing.T) {
	vals := url.Values{"pseudo": {"utilisateur"}, "mdp": {"motdepasse"}}

	t.Run("ok sets body and Authorization header", func(t *testing.T) {
		app, mockRepo, mockTokenService := newTestApp(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
		require.NoError(t, err)

		stored := &domain.User{ID: "u1", Pseudo: "utilisateur", PasswordHash: string(hash)}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(stored, nil)
		mockTokenService.EXPECT().Generate("utilisateur").Return("signed-token", time.Now().Add(time.Minute), nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/connexion", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Bearer signed-token", body(t, resp))
		assert.Equal(t, "Bearer signed-token", resp.Header.Get(fiber.HeaderAuthorization))
	})

	t.Run("unknown user", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(nil, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/connexion", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Mauvais identifiant !", body(t, resp))
	})

	t.Run("wrong password", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
		require.NoError(t, err)

		stored := &domain.User{ID: "u1", Pseudo: "utilisateur", PasswordHash: string(hash)}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(stored, nil)

		badVals := url.Values{"pseudo": {"utilisateur"}, "mdp": {"mauvaismotdepasse"}}
		resp, err := app.Test(formRequest(http.MethodPost, "/auth/connexion", badVals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Mauvais mdp !", body(t, resp))
	})
}

func TestDeconnexion(t *testing.T) {
	vals := url.Values{"pseudo": {"utilisateur"}}

	t.Run("ok", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		stored := &domain.User{ID: "u1", Pseudo: "utilisateur", Connected: true}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(stored, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/deconnexion", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Déconnexion de utilisateur faite !", body(t, resp))
	})

	t.Run("unknown user", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(nil, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/deconnexion", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Utilisateur inexistant", body(t, resp))
	})

	t.Run("already disconnected", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		stored := &domain.User{ID: "u1", Pseudo: "utilisateur", Connected: false}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "utilisateur").Return(stored, nil)

		resp, err := app.Test(formRequest(http.MethodPost, "/auth/deconnexion", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Déjà connecté !", body(t, resp))
	})
}

func TestModificationPseudo(t *testing.T) {
	vals := url.Values{"pseudo": {"ancienPseudo"}, "nouveauPseudo": {"nouveauPseudo"}}

	t.Run("ok", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		stored := &domain.User{ID: "u1", Pseudo: "ancienPseudo"}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "ancienPseudo").Return(stored, nil)
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "nouveauPseudo").Return(nil, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(formRequest(http.MethodPatch, "/modification-pseudo", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Pseudo : ancienPseudo changé en :nouveauPseudo !", body(t, resp))
	})

	t.Run("unknown user", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "ancienPseudo").Return(nil, nil)

		resp, err := app.Test(formRequest(http.MethodPatch, "/modification-pseudo", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Mauvais pseudo !", body(t, resp))
	})

	t.Run("new pseudo taken", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		stored := &domain.User{ID: "u1", Pseudo: "ancienPseudo"}
		other := &domain.User{ID: "u2", Pseudo: "nouveauPseudo"}
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "ancienPseudo").Return(stored, nil)
		mockRepo.EXPECT().GetByPseudo(gomock.Any(), "nouveauPseudo").Return(other, nil)

		resp, err := app.Test(formRequest(http.MethodPatch, "/modification-pseudo", vals))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Pseudo nouveauPseudo déjà pris", body(t, resp))
	})
}

func TestVerification(t *testing.T) {
	t.Run("valid token returns the pseudo", func(t *testing.T) {
		app, _, mockTokenService := newTestApp(t)

		claims := &service.JWTCustomClaims{
			Pseudo: "utilisateur",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "utilisateur",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		mockTokenService.EXPECT().Verify("good-token").Return(claims, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verification", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "utilisateur", body(t, resp))
	})

	t.Run("missing header", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/verification", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/verification", nil)
		req.Header.Set(fiber.HeaderAuthorization, "BearerInvalidToken") // No space
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected token", func(t *testing.T) {
		app, _, mockTokenService := newTestApp(t)

		mockTokenService.EXPECT().Verify("bad-token").Return(nil, errors.New("signature mismatch"))

		req := httptest.NewRequest(http.MethodGet, "/auth/verification", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
