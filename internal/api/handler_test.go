package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tiretrack/internal/api"
	"tiretrack/internal/db"
	"tiretrack/internal/db/repository"
	"tiretrack/internal/domain"
	"tiretrack/internal/middleware"
	"tiretrack/internal/service/directory"
	"tiretrack/internal/service/fleet"
	"tiretrack/internal/service/reporting"
	"tiretrack/internal/service/security"
	"tiretrack/internal/token"
)

const testPassword = "correct horse"

type testEnv struct {
	server      *httptest.Server
	ownerToken  string
	tenantToken string
	companyID   string
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	writeDB, _ := db.OpenTestSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepo(writeDB)
	companies := repository.NewCompanyRepo(writeDB)
	audit := repository.NewAuditRepo(writeDB)
	vehicles := repository.NewVehicleRepo(writeDB)
	tires := repository.NewTireModelRepo(writeDB)
	stock := repository.NewStockRepo(writeDB)
	snapshots := repository.NewSnapshotRepo(writeDB)

	issuer, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	tokenValidator, err := token.NewValidator("test-secret")
	require.NoError(t, err)

	handler := api.NewHandler(
		security.NewDirectoryValidator(users, issuer, logger),
		directory.NewCompanyService(companies, audit, logger),
		directory.NewUserService(users, companies, audit, logger),
		directory.NewAuditService(audit),
		fleet.NewService(vehicles, tires, stock, logger),
		reporting.NewService(companies, vehicles, tires, stock, snapshots, logger),
	)
	server := httptest.NewServer(handler.Routes(middleware.RequireAuth(tokenValidator, nil, nil)))
	t.Cleanup(server.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	company, err := companies.Create(context.Background(), &domain.Company{
		Name:   "Transportes Arrecife",
		TaxID:  "B-11111111",
		Status: domain.StatusActive,
	})
	require.NoError(t, err)

	_, err = users.Create(context.Background(), &domain.User{
		Name:         "Platform Owner",
		Email:        "owner@track.test",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		AccessKind:   domain.AccessOwner,
		Active:       true,
	})
	require.NoError(t, err)
	_, err = users.Create(context.Background(), &domain.User{
		Name:         "Fleet Manager",
		Email:        "manager@arrecife.test",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		AccessKind:   domain.AccessTenant,
		CompanyID:    &company.ID,
		Active:       true,
	})
	require.NoError(t, err)

	env := &testEnv{server: server, companyID: company.ID}
	env.ownerToken = env.login(t, "owner@track.test", testPassword)
	env.tenantToken = env.login(t, "manager@arrecife.test", testPassword)
	return env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)
	return body["token"].(string)
}

// do sends a JSON request and decodes the JSON response into a map.
func (e *testEnv) do(t *testing.T, method, path, bearer string, payload any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestLogin_ReturnsCapabilitiesAndLanding(t *testing.T) {
	env := setupServer(t)

	status, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "owner@track.test",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "/companies", body["landing"])

	caps := body["capabilities"].(map[string]any)
	assert.Equal(t, true, caps["manage_companies"])
	assert.Equal(t, true, caps["manage_users"])
	dests := caps["destinations"].([]any)
	assert.Equal(t, "/dashboard", dests[0])
	assert.Contains(t, dests, "/companies")
	assert.Contains(t, dests, "/reports")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupServer(t)

	status, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "owner@track.test",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid email or password", body["message"])
}

func TestAuth_MissingToken(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodGet, "/companies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMe_ReturnsIdentity(t *testing.T) {
	env := setupServer(t)

	status, body := env.do(t, http.MethodGet, "/auth/me", env.tenantToken, nil)
	require.Equal(t, http.StatusOK, status)

	ident := body["identity"].(map[string]any)
	assert.Equal(t, "manager@arrecife.test", ident["email"])
	assert.Equal(t, env.companyID, ident["company_id"])

	caps := body["capabilities"].(map[string]any)
	assert.Equal(t, false, caps["manage_companies"])
}

func TestCompanies_OwnerLifecycle(t *testing.T) {
	env := setupServer(t)

	status, created := env.do(t, http.MethodPost, "/companies", env.ownerToken, map[string]any{
		"name":   "Cargas del Sur",
		"tax_id": "B-22222222",
	})
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	status, listed := env.do(t, http.MethodGet, "/companies", env.ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, listed["total"])

	newName := "Cargas del Sur SL"
	status, updated := env.do(t, http.MethodPatch, "/companies/"+id, env.ownerToken, map[string]any{
		"name": newName,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, newName, updated["name"])

	status, _ = env.do(t, http.MethodDelete, "/companies/"+id, env.ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/companies/"+id, env.ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCompanies_TenantForbidden(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodPost, "/companies", env.tenantToken, map[string]any{
		"name":   "Intrusa SA",
		"tax_id": "B-99999999",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Reads are rejected at the route too, not just mutations.
	status, _ = env.do(t, http.MethodGet, "/companies", env.tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUsers_NonSuperAdminForbidden(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodGet, "/users", env.tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPost, "/users", env.tenantToken, map[string]any{
		"name":        "Sneaky Admin",
		"email":       "sneaky@arrecife.test",
		"password":    "s3cret",
		"role":        "Admin",
		"access_kind": "Tenant",
		"company_id":  env.companyID,
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUsers_RegisterAndDeactivate(t *testing.T) {
	env := setupServer(t)

	status, created := env.do(t, http.MethodPost, "/users", env.ownerToken, map[string]any{
		"name":        "Depot Operator",
		"email":       "operator@arrecife.test",
		"password":    "s3cret",
		"role":        "Operator",
		"access_kind": "Tenant",
		"company_id":  env.companyID,
	})
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)
	assert.Nil(t, created["password_hash"], "hash must never leave the server")

	status, _ = env.do(t, http.MethodPut, "/users/"+id+"/active", env.ownerToken, map[string]any{
		"active": false,
	})
	require.Equal(t, http.StatusNoContent, status)

	status, fetched := env.do(t, http.MethodGet, "/users/"+id, env.ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, fetched["active"])

	// Deactivated accounts cannot sign in.
	status, _ = env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "operator@arrecife.test",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFleet_StockFlow(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodPost, "/fleet/vehicles", env.tenantToken, map[string]any{
		"name":       "Scania R450",
		"plate":      "1234-KLM",
		"axle_count": 3,
	})
	require.Equal(t, http.StatusCreated, status)

	status, tire := env.do(t, http.MethodPost, "/fleet/tires", env.tenantToken, map[string]any{
		"brand":     "Michelin",
		"model":     "X Multi Z",
		"dimension": "295/80R22.5",
	})
	require.Equal(t, http.StatusCreated, status)
	tireID := tire["id"].(string)

	status, line := env.do(t, http.MethodPut, "/fleet/stock", env.tenantToken, map[string]any{
		"tire_model_id": tireID,
		"quantity":      4,
		"min_quantity":  6,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, line["low"])

	status, listed := env.do(t, http.MethodGet, "/fleet/stock", env.tenantToken, nil)
	require.Equal(t, http.StatusOK, status)
	lines := listed["stock"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "Michelin X Multi Z 295/80R22.5", lines[0].(map[string]any)["tire_label"])
}

func TestFleet_OwnerRejected(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodGet, "/fleet/vehicles", env.ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestReports_Scoping(t *testing.T) {
	env := setupServer(t)

	status, report := env.do(t, http.MethodGet, "/reports/"+env.companyID, env.ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Transportes Arrecife", report["company_name"])

	status, _ = env.do(t, http.MethodGet, "/reports/"+env.companyID, env.tenantToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// A tenant probing another company's report is denied.
	status, other := env.do(t, http.MethodPost, "/companies", env.ownerToken, map[string]any{
		"name":   "Otra Flota",
		"tax_id": "B-33333333",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.do(t, http.MethodGet, fmt.Sprintf("/reports/%s", other["id"]), env.tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAudit_SuperAdminOnly(t *testing.T) {
	env := setupServer(t)

	status, _ := env.do(t, http.MethodGet, "/audit", env.tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The denied attempt above plus the owner's company reads leave a trail.
	status, _ = env.do(t, http.MethodGet, "/companies", env.ownerToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/audit", env.ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	entries := body["entries"].([]any)
	require.NotEmpty(t, entries)
	first := entries[0].(map[string]any)
	assert.Equal(t, "company.list", first["action"])
	assert.Equal(t, "ALLOWED", first["status"])
}
