package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/pkg/responses"
)

// NotificationController handles notification read requests.
type NotificationController struct {
	repo NotificationRepository
}

// NewNotificationController creates a new notification controller.
func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// GetMyNotifications godoc
// @Summary Get notifications for the current user
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Notification} "Notifications, newest first"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/notifications [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	notifications, err := nc.repo.GetByUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve notifications: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// MarkNotificationAsRead godoc
// @Summary Mark a notification as read
// @Description Sets the delivered flag. Only the owning user may mark their notification.
// @Tags Notifications
// @Produce json
// @Param notification_id path uint true "Notification ID"
// @Success 200 {object} responses.SuccessResponse{data=Notification} "Notification marked as read"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Notification belongs to another user"
// @Failure 404 {object} responses.ErrorResponse "Notification not found"
// @Security ApiKeyAuth
// @Router /notifications/{notification_id}/read [put]
func (nc *NotificationController) MarkNotificationAsRead(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := nc.repo.GetByID(uint(notificationID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve notification: "+err.Error())
		return
	}
	if n == nil {
		responses.NotFound(c, "Notification")
		return
	}
	if n.UserID != userID {
		responses.Forbidden(c, "You can only mark your own notifications as read")
		return
	}

	n.Delivered = true
	if err := nc.repo.Update(n); err != nil {
		responses.InternalServerError(c, "Failed to update notification: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as read", n)
}
