package organization

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

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/notification"
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
	if err := db.AutoMigrate(&Organization{}, &Membership{}, &notification.Notification{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func newController(db *gorm.DB) *OrganizationController {
	repo := NewOrganizationRepository(db)
	publisher := notification.NewDispatcher(notification.NewNotificationRepository(db))
	return NewOrganizationController(repo, publisher)
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, userID uint, method, path string, body interface{}) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.AuthUserIDKey, userID)
	return c
}

func TestIsManagerRole(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{RoleSuperManager, true},
		{RoleManager, true},
		{RoleFollower, false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsManagerRole(tc.role); got != tc.want {
			t.Errorf("IsManagerRole(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCreateWithOwnerSeedsSuperManager(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	org := Organization{Name: "Acme", Slug: "acme"}
	if err := repo.CreateWithOwner(&org, 42); err != nil {
		t.Fatalf("Failed to create organization: %v", err)
	}

	m, err := repo.GetMembership(org.ID, 42)
	if err != nil {
		t.Fatalf("Failed to get membership: %v", err)
	}
	if m == nil {
		t.Fatal("Expected creator membership, got none")
	}
	if m.Role != RoleSuperManager {
		t.Errorf("Expected role %s, got %s", RoleSuperManager, m.Role)
	}
}

func TestCreateOrganizationDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	controller := newController(db)

	w := httptest.NewRecorder()
	c := authedContext(t, w, 1, http.MethodPost, "/organizations", CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	controller.CreateOrganization(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	c = authedContext(t, w, 2, http.MethodPost, "/organizations", CreateOrganizationRequest{Name: "Acme Two", Slug: "acme"})
	controller.CreateOrganization(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate slug, got %d", w.Code)
	}

	var count int64
	db.Model(&Organization{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 organization row, got %d", count)
	}
}

func TestJoinOrganization(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	controller := newController(db)

	org := Organization{Name: "Acme", Slug: "acme"}
	if err := repo.CreateWithOwner(&org, 1); err != nil {
		t.Fatalf("Failed to create organization: %v", err)
	}

	w := httptest.NewRecorder()
	c := authedContext(t, w, 2, http.MethodPost, "/organizations/1/join", JoinOrganizationRequest{})
	c.Params = gin.Params{{Key: "org_id", Value: fmt.Sprint(org.ID)}}
	controller.JoinOrganization(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	m, err := repo.GetMembership(org.ID, 2)
	if err != nil || m == nil {
		t.Fatalf("Expected membership, got %v, %v", m, err)
	}
	if m.Role != RoleFollower {
		t.Errorf("Expected default role %s, got %s", RoleFollower, m.Role)
	}

	// Joining notifies the user.
	notifications, err := notification.NewNotificationRepository(db).GetByUserID(2)
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != notification.TypeOrgJoined {
		t.Errorf("Expected one %s notification, got %v", notification.TypeOrgJoined, notifications)
	}

	// A second join is rejected.
	w = httptest.NewRecorder()
	c = authedContext(t, w, 2, http.MethodPost, "/organizations/1/join", JoinOrganizationRequest{})
	c.Params = gin.Params{{Key: "org_id", Value: fmt.Sprint(org.ID)}}
	controller.JoinOrganization(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate membership, got %d", w.Code)
	}
}

func TestJoinMissingOrganization(t *testing.T) {
	db := setupTestDB(t)
	controller := newController(db)

	w := httptest.NewRecorder()
	c := authedContext(t, w, 2, http.MethodPost, "/organizations/99/join", JoinOrganizationRequest{})
	c.Params = gin.Params{{Key: "org_id", Value: "99"}}
	controller.JoinOrganization(c)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCurrentRoleNonMember(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	org := Organization{Name: "Acme", Slug: "acme"}
	if err := repo.CreateWithOwner(&org, 1); err != nil {
		t.Fatalf("Failed to create organization: %v", err)
	}

	role, err := repo.CurrentRole(org.ID, 77)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if role != "" {
		t.Errorf("Expected empty role for non-member, got %q", role)
	}
}
