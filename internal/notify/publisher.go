package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "notification_events"
)

// Каналы доставки уведомлений
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Notification - структура уведомления для внешнего шлюза.
// Доставка fire-and-forget, ядро не потребляет ответ шлюза.
type Notification struct {
	Channel   string      `json:"channel"`
	Recipient string      `json:"recipient"`
	ReportID  string      `json:"report_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NotificationPublisher - интерфейс для постановки уведомлений в очередь
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// RedisNotificationPublisher - реализация NotificationPublisher, использующая Redis
type RedisNotificationPublisher struct {
	redisClient *redis.Client
}

// NewRedisNotificationPublisher создает новый RedisNotificationPublisher
func NewRedisNotificationPublisher(client *redis.Client) *RedisNotificationPublisher {
	return &RedisNotificationPublisher{
		redisClient: client,
	}
}

// Publish публикует уведомление в очередь Redis
func (p *RedisNotificationPublisher) Publish(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// Используем LPUSH для добавления уведомления в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
