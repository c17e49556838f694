//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// Broker — одноузловой Redpanda (Kafka API).
type Broker struct {
	Container *redpanda.Container
	Addrs     []string
	prefix    string
	seq       atomic.Int64
}

// StartBroker поднимает Redpanda; prefix — общая часть имён топиков и групп этого теста.
func StartBroker(ctx context.Context, prefix string) (*Broker, func(context.Context) error, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		tc.WithLifecycleHooks(lifecycle("redpanda")),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	b := &Broker{Container: rp, Addrs: []string{seed}, prefix: prefix}
	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return b, stop, nil
}

var reTopicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// NewTopic создаёт пустой топик с одной партицией и возвращает его имя и имя группы.
// name обычно t.Name(); недопустимые для Kafka символы заменяются на '-'.
func (b *Broker) NewTopic(ctx context.Context, name string) (topic, group string, err error) {
	topic = fmt.Sprintf("%s-%s-%d-%d",
		b.prefix, reTopicUnsafe.ReplaceAllString(name, "-"), time.Now().UnixNano(), b.seq.Add(1))
	if err := b.createTopic(ctx, topic); err != nil {
		return "", "", err
	}
	return topic, topic + "-group", nil
}

func (b *Broker) createTopic(ctx context.Context, topic string) error {
	var d kafka.Dialer
	conn, err := d.DialContext(ctx, "tcp", b.Addrs[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	// CreateTopics принимает только контроллер
	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	admin, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}

	// ждём появления партиции в метаданных
	for {
		parts, perr := conn.ReadPartitions(topic)
		if perr == nil && len(parts) > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %s not ready: %w", topic, ctx.Err())
		case <-time.After(200 * time.Millisecond):
		}
	}
}
