package kafka

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrIncorrectEnvVariable)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteEvent публикует событие с ключом aggregate id, чтобы события одного заказа
// или поставщика попадали в одну партицию.
func (p *Producer) WriteEvent(ctx context.Context, event *domain.Event) error {
	value, err := EventBytes(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		p.logger.Infof("kafka topic %s created", p.cfg.Topic)
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EventBytes сериализует событие в protobuf google.protobuf.Struct.
func EventBytes(event *domain.Event) ([]byte, error) {
	msg, err := EventStruct(event)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

// EventStruct собирает Struct вида {event_id, event_type, aggregate_id, created_at, payload}.
func EventStruct(event *domain.Event) (*structpb.Struct, error) {
	payload, err := normalizePayload(event.Payload)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return structpb.NewStruct(map[string]any{
		"event_id":     event.EventID,
		"event_type":   string(event.EventType),
		"aggregate_id": event.AggregateID,
		"created_at":   event.CreatedAt.UTC().Format(time.RFC3339Nano),
		"payload":      payload,
	})
}

// normalizePayload приводит значения к JSON-типам, которые понимает structpb
// (decimal, time.Time и структуры становятся строками, числами и объектами).
func normalizePayload(payload map[string]any) (map[string]any, error) {
	if len(payload) == 0 {
		return map[string]any{}, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
