package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"github.com/iho/glkernel/internal/domain"
)

const kafkaClientID = "glkernel-dispatcher"

// commandMessage is the record value written to the command topic.
type commandMessage struct {
	ID             string             `json:"id"`
	Type           domain.CommandType `json:"type"`
	AggregateType  string             `json:"aggregateType"`
	AggregateID    string             `json:"aggregateId"`
	IdempotencyKey string             `json:"idempotencyKey"`
	Payload        map[string]any     `json:"payload"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// KafkaPublisher forwards commands to a Kafka topic keyed by aggregate,
// so commands for one ledger or period stay ordered within a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// NewSyncProducer dials brokers with acks from all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = kafkaClientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, cmd *domain.Command) error {
	msg, err := p.prepareMessage(cmd)
	if err != nil {
		return err
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send command %s to %s: %w", cmd.ID, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) prepareMessage(cmd *domain.Command) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(commandMessage{
		ID:             cmd.ID,
		Type:           cmd.Type,
		AggregateType:  cmd.AggregateType,
		AggregateID:    cmd.AggregateID,
		IdempotencyKey: cmd.IdempotencyKey,
		Payload:        cmd.Payload,
		CreatedAt:      cmd.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal command %s: %w", cmd.ID, err)
	}

	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(cmd.AggregateType + ":" + cmd.AggregateID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("command_type"), Value: []byte(cmd.Type)},
			{Key: []byte("idempotency_key"), Value: []byte(cmd.IdempotencyKey)},
		},
	}, nil
}
