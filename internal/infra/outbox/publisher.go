package outbox

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PublisherConfig настройки публикации событий
type PublisherConfig struct {
	Brokers   string
	PollEvery time.Duration
	BatchSize int
}

// Publisher периодически вычитывает outbox и публикует события в Kafka
//
// Публикация выполняется после коммита породившей событие транзакции
// (at-least-once): при падении между записью в Kafka и MarkPublished событие
// будет отправлено повторно, потребители обязаны быть идемпотентными
type Publisher struct {
	repo      *Repository
	logger    Logger
	brokers   []string
	pollEvery time.Duration
	batchSize int
}

// NewPublisher создает publisher
func NewPublisher(repo *Repository, logger Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		repo:      repo,
		logger:    logger,
		brokers:   splitBrokers(cfg.Brokers),
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

// Run запускает цикл публикации до отмены контекста
func (p *Publisher) Run(ctx context.Context) {
	if len(p.brokers) == 0 {
		p.logger.Warn("Outbox publisher disabled (no kafka brokers configured)")
		return
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(p.brokers...),
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	p.logger.Info("Outbox publisher started (brokers=%s, poll=%s, batch=%d)",
		strings.Join(p.brokers, ","), p.pollEvery, p.batchSize)

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox publisher stopped")
			return
		case <-ticker.C:
			if err := p.publishBatch(ctx, writer); err != nil {
				p.logger.Error("Outbox publish failed: %v", err)
			}
		}
	}
}

func (p *Publisher) publishBatch(ctx context.Context, writer *kafka.Writer) error {
	records, err := p.repo.FetchUnpublished(ctx, p.batchSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, kafka.Message{
			Topic: rec.EventType,
			Key:   []byte(rec.AggregateID),
			Value: rec.Payload,
			Headers: []kafka.Header{
				{Key: "aggregate_type", Value: []byte(rec.AggregateType)},
				{Key: "event_type", Value: []byte(rec.EventType)},
			},
		})
	}

	if err := writer.WriteMessages(ctx, messages...); err != nil {
		return err
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	if err := p.repo.MarkPublished(ctx, ids); err != nil {
		return err
	}

	p.logger.Info("Outbox: published %d events", len(records))
	return nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			brokers = append(brokers, part)
		}
	}
	return brokers
}
