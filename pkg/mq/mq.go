// Package mq 基于RabbitMQ的事件发布/订阅
//
// 库存事件通过topic交换机发布,routing key形如stock.moved、stock.alert、catalog.imported,
// 消费者可以用stock.#之类的通配符订阅。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher 消息发布者
// amqp.Channel不是并发安全的,Publish内部加锁
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	channel  *amqp.Channel
	exchange string
	log      *slog.Logger
}

// NewPublisher 连接RabbitMQ并声明持久化交换机
func NewPublisher(url, exchange, exchangeType string, log *slog.Logger) (*Publisher, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	log.Info("消息发布者已创建", "exchange", exchange, "type", exchangeType)
	return &Publisher{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

// Publish 发布JSON消息(持久化投递)
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.log.DebugContext(ctx, "消息已发布", "routing_key", routingKey, "bytes", len(body))
	return nil
}

// Close 关闭发布者
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Delivery 消费到的消息
type Delivery struct {
	RoutingKey string
	Body       []byte
	Timestamp  time.Time
}

// Handler 消息处理函数,返回error时消息重新入队
type Handler func(ctx context.Context, d Delivery) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *slog.Logger
}

// NewConsumer 声明队列并按routingKeys绑定到交换机
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, log *slog.Logger) (*Consumer, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	closeAll := func() {
		_ = channel.Close()
		_ = conn.Close()
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			closeAll()
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	log.Info("消息消费者已创建", "queue", q.Name, "routing_keys", routingKeys)
	return &Consumer{conn: conn, channel: channel, queue: q.Name, log: log}, nil
}

// Consume 阻塞消费直到ctx取消
// 手动确认:handler成功Ack,失败Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			c.log.Info("消费者退出", "queue", c.queue)
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}

			d := Delivery{RoutingKey: msg.RoutingKey, Body: msg.Body, Timestamp: msg.Timestamp}
			if err := handler(ctx, d); err != nil {
				c.log.WarnContext(ctx, "消息处理失败,重新入队", "routing_key", msg.RoutingKey, "error", err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Queue 实际的队列名
func (c *Consumer) Queue() string {
	return c.queue
}

// Close 关闭消费者
func (c *Consumer) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
