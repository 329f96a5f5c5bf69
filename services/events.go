package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"donation-gateway/config"
	"donation-gateway/logger"

	"github.com/segmentio/kafka-go"
)

var (
	producer      *kafka.Writer
	producerMutex sync.Mutex
)

// InitProducer initializes a Kafka writer using brokers from the config
func InitProducer() {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")

	// Validate brokers
	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured")
		return
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("Kafka producer initialized. Brokers=%v", validBrokers)
}

// Close shuts the producer down gracefully.
func Close() error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}

// Publish marshals value to JSON and publishes to the configured topic with
// key. Uses exponential backoff retry logic (3 attempts). Best-effort: when
// Kafka is disabled the call is a no-op.
func Publish(key string, value interface{}) error {
	producerMutex.Lock()
	if producer == nil && config.AppConfig.KafkaBrokers != "" {
		producerMutex.Unlock()
		InitProducer()
		producerMutex.Lock()
	}
	defer producerMutex.Unlock()

	if producer == nil || config.AppConfig.KafkaBrokers == "" {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: config.AppConfig.KafkaTopic,
		Key:   []byte(key),
		Value: payload,
	}

	// Retry with exponential backoff
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := producer.WriteMessages(ctx, msg)
		cancel()

		if err == nil {
			return nil
		}

		lastErr = err
		if attempt < 2 {
			backoffTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Warn("Kafka publish attempt %d/3 failed, retrying in %v: %v", attempt+1, backoffTime, err)
			time.Sleep(backoffTime)
		} else {
			logger.Error("Kafka publish failed after 3 attempts: %v", err)
		}
	}

	return lastErr
}

// publishPaymentEvent emits a lifecycle event for a payment request.
// Publishing is non-critical and runs off the request path.
func publishPaymentEvent(event string, id int, clientRef string, amount float64, status string) {
	go func() {
		evt := map[string]interface{}{
			"event":               event,
			"payment_request_id":  id,
			"client_reference_id": clientRef,
			"amount":              amount,
			"currency":            "IDR",
			"status":              status,
			"ts":                  time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish(clientRef, evt); err != nil {
			logger.Warn("Failed to publish %s event: %v", event, err)
		}
	}()
}
