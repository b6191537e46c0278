package eventbus

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Роли подключенных клиентов
const (
	RoleHospitalDashboard = "hospital_dashboard"
	RolePatientDevice     = "patient_device"
	RoleSubmitter         = "submitter"
)

// Event - типизированное событие, публикуемое в топик
type Event struct {
	Type      string      `json:"type"`
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// HospitalTopic возвращает имя топика очереди больницы
func HospitalTopic(hospitalID uuid.UUID) string {
	return fmt.Sprintf("hospital:%s", hospitalID)
}

// PatientTopic возвращает имя топика обращения пациента
func PatientTopic(reportID uuid.UUID) string {
	return fmt.Sprintf("patient:%s", reportID)
}

// Bus ведет подписки клиентов на топики и рассылает события.
// Доставка best-effort, не более одного раза на соединение: отключившийся
// клиент пропускает события и запрашивает свежий срез при переподключении,
// шина ничего не переигрывает.
type Bus struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	topics  map[string]map[uuid.UUID]*Client
	logger  *logrus.Logger
}

// NewBus создает шину событий
func NewBus(logger *logrus.Logger) *Bus {
	return &Bus{
		clients: make(map[uuid.UUID]*Client),
		topics:  make(map[string]map[uuid.UUID]*Client),
		logger:  logger,
	}
}

// Register регистрирует новое соединение
func (b *Bus) Register(client *Client) {
	b.mu.Lock()
	b.clients[client.ID] = client
	b.mu.Unlock()

	b.logger.WithField("client_id", client.ID).Debug("Event bus client registered")
}

// Unregister снимает все подписки соединения и удаляет его
func (b *Bus) Unregister(clientID uuid.UUID) {
	b.mu.Lock()
	client, ok := b.clients[clientID]
	if ok {
		delete(b.clients, clientID)
		for topic := range client.topics {
			b.removeFromTopic(topic, clientID)
		}
	}
	b.mu.Unlock()

	if ok {
		client.closeSend()
		b.logger.WithField("client_id", clientID).Debug("Event bus client unregistered")
	}
}

// Identify привязывает соединение к пользователю и роли
func (b *Bus) Identify(clientID uuid.UUID, userID, role, reportID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	client, ok := b.clients[clientID]
	if !ok {
		return fmt.Errorf("unknown client %s", clientID)
	}
	client.UserID = userID
	client.Role = role
	client.ReportID = reportID
	return nil
}

// Subscribe добавляет интерес соединения к топику.
// Топики независимы, соединение может держать несколько подписок.
func (b *Bus) Subscribe(clientID uuid.UUID, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	client, ok := b.clients[clientID]
	if !ok {
		return fmt.Errorf("unknown client %s", clientID)
	}

	subscribers, ok := b.topics[topic]
	if !ok {
		subscribers = make(map[uuid.UUID]*Client)
		b.topics[topic] = subscribers
	}
	subscribers[clientID] = client
	client.topics[topic] = struct{}{}
	return nil
}

// Unsubscribe убирает интерес к топику, не закрывая соединение
func (b *Bus) Unsubscribe(clientID uuid.UUID, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	client, ok := b.clients[clientID]
	if !ok {
		return fmt.Errorf("unknown client %s", clientID)
	}
	delete(client.topics, topic)
	b.removeFromTopic(topic, clientID)
	return nil
}

// Publish рассылает событие всем подписчикам топика.
// Отправка неблокирующая: при переполненном буфере клиента событие
// отбрасывается, мутация-источник никогда не ждет доставки.
func (b *Bus) Publish(topic, eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		b.logger.WithError(err).WithField("event_type", eventType).Error("Failed to marshal event")
		return
	}

	b.mu.RLock()
	subscribers := make([]*Client, 0, len(b.topics[topic]))
	for _, client := range b.topics[topic] {
		subscribers = append(subscribers, client)
	}
	b.mu.RUnlock()

	for _, client := range subscribers {
		select {
		case client.send <- raw:
		default:
			// Медленный клиент: событие отбрасывается
			b.logger.WithFields(logrus.Fields{
				"client_id":  client.ID,
				"topic":      topic,
				"event_type": eventType,
			}).Warn("Dropping event for slow client")
		}
	}
}

// SubscriberCount возвращает число подписчиков топика
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// removeFromTopic вызывается под b.mu
func (b *Bus) removeFromTopic(topic string, clientID uuid.UUID) {
	if subscribers, ok := b.topics[topic]; ok {
		delete(subscribers, clientID)
		if len(subscribers) == 0 {
			delete(b.topics, topic)
		}
	}
}
