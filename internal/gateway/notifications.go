package gateway

import (
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// NotificationGateway defines the interface for notification operations
type NotificationGateway interface {
	Create(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationGateway struct {
	db *gorm.DB
}

// NewPostgresNotificationGateway creates a new NotificationGateway backed by PostgreSQL
func NewPostgresNotificationGateway(db *gorm.DB) NotificationGateway {
	return &postgresNotificationGateway{db: db}
}

func (g *postgresNotificationGateway) Create(notification *models.Notification) error {
	return g.db.Create(notification).Error
}

func (g *postgresNotificationGateway) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	g.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total)

	offset := (page - 1) * limit
	err := g.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (g *postgresNotificationGateway) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := g.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (g *postgresNotificationGateway) MarkAsRead(notificationID uint) error {
	return g.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

func (g *postgresNotificationGateway) MarkAllAsRead(recipientID uint) error {
	return g.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
