package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

// Enqueue stores an event in the same transaction as the change it describes.
func (u *UnitOfWork) Enqueue(topic, key string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	ev := models.OutboxEvent{
		EventID: uuid.NewString(),
		Topic:   topic,
		Key:     key,
		Payload: string(data),
	}
	if err := u.tx.Create(&ev).Error; err != nil {
		return "", err
	}
	return ev.EventID, nil
}

func (r *GormRepo) FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var out []models.OutboxEvent
	err := r.DB.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *GormRepo) MarkSent(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Update("sent_at", time.Now().UTC()).Error
}
