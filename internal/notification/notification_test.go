package notification

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
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
	if err := db.AutoMigrate(&Notification{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, userID uint, params gin.Params) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/notifications", nil)
	c.Params = params
	c.Set(middleware.AuthUserIDKey, userID)
	return c
}

func TestDispatcherCreatesRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	dispatcher := NewDispatcher(repo)

	dispatcher.Publish(
		Event{UserID: 1, Type: TypeTeamInvite, Payload: models.JSONMap{"teamId": 7}},
		Event{UserID: 2, Type: TypeTeamUpdate},
	)

	first, err := repo.GetByUserID(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first) != 1 || first[0].Type != TypeTeamInvite {
		t.Errorf("Expected one %s notification, got %v", TypeTeamInvite, first)
	}
	if first[0].Delivered {
		t.Error("Expected new notification undelivered")
	}

	second, _ := repo.GetByUserID(2)
	if len(second) != 1 || second[0].Type != TypeTeamUpdate {
		t.Errorf("Expected one %s notification, got %v", TypeTeamUpdate, second)
	}
}

func TestMarkNotificationAsRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	n := Notification{UserID: 1, Type: TypeOrgJoined}
	if err := repo.Create(&n); err != nil {
		t.Fatalf("Failed to create notification: %v", err)
	}
	params := gin.Params{{Key: "notification_id", Value: fmt.Sprint(n.ID)}}

	// A foreign user may not mark it.
	w := httptest.NewRecorder()
	controller.MarkNotificationAsRead(authedContext(t, w, 2, params))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	controller.MarkNotificationAsRead(authedContext(t, w, 1, params))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated, _ := repo.GetByID(n.ID)
	if !updated.Delivered {
		t.Error("Expected notification marked delivered")
	}

	// Missing notification is a 404.
	w = httptest.NewRecorder()
	controller.MarkNotificationAsRead(authedContext(t, w, 1, gin.Params{{Key: "notification_id", Value: "999"}}))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
