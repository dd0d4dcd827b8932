// Package events publica eventos de dominio sobre RabbitMQ. El envío es
// best-effort: una falla del broker se registra y jamás afecta el resultado
// del lote que la originó.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ stocks.EventPublisher = (*AMQPPublisher)(nil)

// AMQPPublisher implementa stocks.EventPublisher sobre un exchange topic.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *logger.Logger
}

// NewAMQPPublisher conecta al broker y declara el exchange topic durable.
func NewAMQPPublisher(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: conectar al broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp: declarar exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// batchReconciledEvent es el cuerpo JSON del evento stock.batch.reconciled.
type batchReconciledEvent struct {
	BatchID    string    `json:"batch_id"`
	Direction  string    `json:"direction"`
	LineItems  int       `json:"line_items"`
	Matched    int64     `json:"matched"`
	Modified   int64     `json:"modified"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BatchReconciled publica el evento de lote conciliado. Best-effort: las
// fallas sólo se registran.
func (p *AMQPPublisher) BatchReconciled(ctx context.Context, batch *entity.Batch, result stock.ReconcileResult) {
	body, err := json.Marshal(batchReconciledEvent{
		BatchID:    batch.ID,
		Direction:  batch.Direction,
		LineItems:  len(batch.Items),
		Matched:    result.Matched,
		Modified:   result.Modified,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		p.log.Error().Err(err).Str("batch_id", batch.ID).Msg("evento: serializar batch reconciled")
		return
	}

	routingKey := "stock.batch.reconciled." + batch.Direction
	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error().Err(err).Str("batch_id", batch.ID).Msg("evento: publicar batch reconciled")
		return
	}
	p.log.Debug().Str("batch_id", batch.ID).Str("routing_key", routingKey).Msg("evento publicado")
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
