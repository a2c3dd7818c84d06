package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	apphttp "github.com/tu-usuario/erp-multitenant/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/erp-multitenant/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "user@empresa.test"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "erp-multitenant-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware más
// el middleware de autorización indicado y un handler dummy que devuelve 200.
func buildTestApp(authz fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		authz,
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	companyID := testCompanyID
	if role == entity.RoleSuperAdmin {
		companyID = ""
	}
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET /protected con el header Authorization dado.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: cookie y bearer
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenEnCookie(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.AuthCookieName, Value: tokenForRole(t, entity.RoleCompanyAdmin)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la cookie auth-token debe autenticar sin header Authorization")
}

func TestAuthMiddleware_BearerComoFallback(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleCompanyAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testCompanyID, entity.RoleCompanyAdmin, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado debe retornar 401")
}

func TestAuthMiddleware_FirmaDeOtroSecret_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	tok, err := pkgjwt.Generate("otro-secret-distinto", testUserID, testEmail, testCompanyID, entity.RoleCompanyAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtractaPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{
			"user_id":    p.UserID,
			"email":      p.Email,
			"company_id": p.CompanyID,
			"role":       p.Role,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleManager))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleManager, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolPermitido(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleSuperAdmin))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin, entity.RoleManager))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"MANAGER debe pasar en ruta que permite COMPANY_ADMIN o MANAGER")
}

func TestRequireRole_RolNoPermitido_Retorna403(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleSuperAdmin))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleCompanyAdmin))
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission: matriz rol, recurso y acción
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_SuperAdminComodin(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceCompany, access.ActionDelete))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"SUPER_ADMIN tiene * sobre todos los recursos")
}

func TestRequirePermission_ManagerPuedeAjustarInventario(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceInventory, access.ActionAdjust))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_ManagerNoPuedeReembolsar(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceSales, access.ActionRefund))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"refund de ventas es exclusivo de COMPANY_ADMIN y SUPER_ADMIN")
}

func TestRequirePermission_UserSoloPerfil(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceProduct, access.ActionRead))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"USER no tiene acceso al catálogo de productos")
}

func TestRequirePermission_UserPuedeSolicitarAscenso(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceRoleRequest, access.ActionCreate))
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SoloAdminApruebaAscensos(t *testing.T) {
	app := buildTestApp(apphttp.RequirePermission(access.ResourceManager, access.ActionApprove))

	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleCompanyAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un MANAGER no revisa solicitudes de ascenso")
}
