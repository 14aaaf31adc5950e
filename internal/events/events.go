// Package events публикует уведомления об изменениях сущностей.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Action задаёт вид изменения сущности.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionPatch  Action = "patch"
	ActionDelete Action = "delete"
)

// Имена сущностей в полезной нагрузке событий.
const (
	EntityAppUser   = "appUser"
	EntityUserGroup = "userGroup"
)

// EntityEvent описывает полезную нагрузку сообщения об изменении.
type EntityEvent struct {
	Entity     string    `json:"entity"`
	Action     Action    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher отправляет события об изменениях сущностей.
type Publisher interface {
	Publish(ctx context.Context, ev EntityEvent) error
	Close() error
}

// NopPublisher используется, когда брокеры не настроены.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, EntityEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }

// messageWriter покрывает часть *kafka.Writer, которую использует KafkaPublisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Ограничения на отправку одного события: запись в REST ждёт Publish не дольше publishTimeout.
const (
	publishTimeout = time.Second
	batchTimeout   = 10 * time.Millisecond
)

// KafkaPublisher пишет события в топик Kafka; ключом сообщения служит id сущности.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher создаёт writer для указанных брокеров и топика.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
			WriteTimeout:           publishTimeout,
			MaxAttempts:            3,
		},
		timeout: publishTimeout,
	}
}

// Publish сериализует событие в JSON и отправляет его.
func (p *KafkaPublisher) Publish(ctx context.Context, ev EntityEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Entity + ":" + strconv.FormatInt(ev.ID, 10)),
		Value: payload,
	}
	timeout := p.timeout
	if timeout <= 0 {
		timeout = publishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("could not send event to kafka: %w", err)
	}

	log.Debug().Str("entity", ev.Entity).Str("action", string(ev.Action)).Int64("id", ev.ID).Msg("event published")
	return nil
}

// Close закрывает writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New выбирает реализацию: Kafka при непустом списке брокеров, иначе NopPublisher.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
