package eventlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
)

// Logger writes audit records for order lifecycle events to a Kafka topic.
// It is an optional sink: a nil *Logger drops events silently so callers do
// not have to branch on whether Kafka is configured.
type Logger struct {
	producer sarama.SyncProducer
	topic    string
}

// Config holds Kafka connection details.
type Config struct {
	Brokers []string
	Topic   string
}

// NewLogger creates a Kafka-backed event logger.
func NewLogger(cfg Config) (*Logger, error) {
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Logger{
		producer: producer,
		topic:    cfg.Topic,
	}, nil
}

// Close shuts down the underlying producer.
func (l *Logger) Close() error {
	if l == nil || l.producer == nil {
		return nil
	}
	return l.producer.Close()
}

// Log stamps the event with the current time and sends it to the topic.
func (l *Logger) Log(event map[string]interface{}) error {
	if l == nil || l.producer == nil {
		return nil
	}

	event["timestamp"] = time.Now().Unix()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	_, _, err = l.producer.SendMessage(&sarama.ProducerMessage{
		Topic: l.topic,
		Value: sarama.StringEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("failed to send audit event: %w", err)
	}
	return nil
}
