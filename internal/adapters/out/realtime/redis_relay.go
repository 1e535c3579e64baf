package realtime

import (
	"context"
	"strings"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannelPrefix = "notifications:"

// RedisRelay publishes every event to Redis and feeds the events received
// from Redis into the local hub, so a user connected to any instance gets the
// notifications produced by all of them.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
	prefix string
	logger *zap.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisRelay(client *redis.Client, hub *Hub, prefix string, logger *zap.Logger) *RedisRelay {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisRelay{client: client, hub: hub, prefix: prefix, logger: logger.Named("relay")}
}

// Publish implements ports.LiveChannel. When Redis is unreachable the event
// still reaches the recipient's connections on this instance.
func (r *RedisRelay) Publish(ctx context.Context, recipientID kernel.UUID, n *notification.Notification) {
	frame, err := encodeNotification(n)
	if err != nil {
		r.logger.Error("encode notification", zap.String("notification", n.ID().String()), zap.Error(err))
		return
	}

	if err = r.client.Publish(ctx, r.prefix+recipientID.String(), frame).Err(); err != nil {
		r.logger.Warn("publish failed, delivering locally",
			zap.String("recipient", recipientID.String()), zap.Error(err))
		r.hub.Deliver(recipientID.String(), frame)
	}
}

// Start subscribes to the relay channels and returns once the subscription
// is confirmed. Messages are forwarded until Stop.
func (r *RedisRelay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pubsub != nil {
		return nil
	}

	pubsub := r.client.PSubscribe(ctx, r.prefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return pkgerrors.Wrap(err, "subscribe to relay channels")
	}

	r.pubsub = pubsub
	r.done = make(chan struct{})
	go r.forward(pubsub.Channel(), r.done)

	r.logger.Info("relay subscribed", zap.String("pattern", r.prefix+"*"))
	return nil
}

func (r *RedisRelay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pubsub == nil {
		return
	}
	if err := r.pubsub.Close(); err != nil {
		r.logger.Warn("close subscription", zap.Error(err))
	}
	<-r.done
	r.pubsub = nil
	r.logger.Info("relay stopped")
}

func (r *RedisRelay) forward(messages <-chan *redis.Message, done chan<- struct{}) {
	defer close(done)
	for msg := range messages {
		recipient := strings.TrimPrefix(msg.Channel, r.prefix)
		r.hub.Deliver(recipient, []byte(msg.Payload))
	}
}
