package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tourneo/tourneo/config"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/internal/user"
	"github.com/tourneo/tourneo/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	err = db.AutoMigrate(&user.User{}, &organization.Organization{}, &organization.Membership{})
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryHours = 1
	return cfg
}

func newController(db *gorm.DB) *AuthController {
	return NewAuthController(
		user.NewUserRepository(db),
		organization.NewOrganizationRepository(db),
		testConfig(),
	)
}

func jsonContext(t *testing.T, w *httptest.ResponseRecorder, path string, body interface{}) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	controller := newController(db)

	w := httptest.NewRecorder()
	controller.Register(jsonContext(t, w, "/auth/register", RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "longenough",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Stored password is hashed.
	u, err := user.NewUserRepository(db).GetUserByEmail("ada@example.com")
	if err != nil || u == nil {
		t.Fatalf("User not found: %v", err)
	}
	if u.Password == "longenough" {
		t.Error("Expected hashed password in store")
	}

	// Wrong password is rejected.
	w = httptest.NewRecorder()
	controller.Login(jsonContext(t, w, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "wrong"}))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	controller.Login(jsonContext(t, w, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "longenough"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	claims, err := token.ValidateJWT(resp.Data.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("Token did not validate: %v", err)
	}
	if claims.UserID != u.ID || claims.Email != "ada@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	controller := newController(db)

	w := httptest.NewRecorder()
	controller.Register(jsonContext(t, w, "/auth/register", RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "longenough",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	controller.Register(jsonContext(t, w, "/auth/register", RegisterRequest{
		Name: "Ada Again", Email: "ada@example.com", Password: "longenough",
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestLoginRoleSnapshot(t *testing.T) {
	db := setupTestDB(t)
	controller := newController(db)
	orgs := organization.NewOrganizationRepository(db)

	w := httptest.NewRecorder()
	controller.Register(jsonContext(t, w, "/auth/register", RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "longenough",
	}))
	u, _ := user.NewUserRepository(db).GetUserByEmail("ada@example.com")

	org := organization.Organization{Name: "Acme", Slug: "acme"}
	if err := orgs.CreateWithOwner(&org, u.ID); err != nil {
		t.Fatalf("Failed to create organization: %v", err)
	}

	w = httptest.NewRecorder()
	controller.Login(jsonContext(t, w, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "longenough"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	claims, err := token.ValidateJWT(resp.Data.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("Token did not validate: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != organization.RoleSuperManager {
		t.Errorf("Expected super_manager role snapshot, got %v", claims.Roles)
	}
}
