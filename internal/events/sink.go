package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Sink publica eventos de análise
type Sink interface {
	Publish(ctx context.Context, event AnalysisEvent) error
	Close()
}

// NopSink descarta os eventos; usado quando KAFKA_BROKERS não está configurado
type NopSink struct{}

func (NopSink) Publish(context.Context, AnalysisEvent) error { return nil }
func (NopSink) Close()                                       {}

// KafkaSink publica no tópico configurado
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaSink cria o producer e inicia o loop de relatórios de entrega
func NewKafkaSink(brokers, topic string) (*KafkaSink, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"linger.ms":         10,
		"acks":              "1",
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar producer kafka: %w", err)
	}

	go handleDeliveryReports(producer)

	log.Printf("[Events] Producer Kafka pronto (tópico %s)", topic)
	return &KafkaSink{producer: producer, topic: topic}, nil
}

// Publish enfileira a mensagem no producer; a entrega é confirmada de forma assíncrona
func (s *KafkaSink) Publish(ctx context.Context, event AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar evento: %w", err)
	}

	err = s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &s.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.Fingerprint),
		Value:          value,
		Headers: []kafka.Header{
			{Key: "content_type", Value: []byte("application/json")},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("erro ao publicar evento: %w", err)
	}
	return nil
}

// Close aguarda mensagens pendentes por até 5s e fecha o producer
func (s *KafkaSink) Close() {
	if remaining := s.producer.Flush(5000); remaining > 0 {
		log.Printf("[Events] %d mensagens não entregues no encerramento", remaining)
	}
	s.producer.Close()
}

func handleDeliveryReports(producer *kafka.Producer) {
	for e := range producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				log.Printf("[Events] Falha na entrega Kafka: %v", ev.TopicPartition.Error)
			}
		case kafka.Error:
			log.Printf("[Events] Erro Kafka: %v", ev)
		}
	}
}
