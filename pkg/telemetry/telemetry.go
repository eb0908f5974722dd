// Package telemetry publishes experiment progress over MQTT so a bench
// deployment can be watched off-board. Publishing is best-effort and
// never backpressures the controller.
package telemetry

import (
	"context"
	"net/url"
	"strings"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/benchkit/sftest.go/pkg/telemetry/msgs"
)

// QueueCap is the telemetry queue depth.
const QueueCap = 4

// ProgressTopic is the topic suffix progress events are published to,
// below the per-harness prefix.
const ProgressTopic = "progress"

// Queue wraps an MQTT client with a topic prefix.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
}

// Handler is the callback when a subscribed message is received.
type Handler func(topic string, payload []byte)

// ClientOptionsFromURL creates paho options from an
// mqtt://host:port/prefix URL.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	} else if id, err := machineid.ID(); err == nil {
		opts.SetClientID("sftest-" + id)
	}
	return opts, topicPrefix, nil
}

// NewQueueFromURL creates a Queue from a broker URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Queue{Client: paho.NewClient(opts), TopicPrefix: topicPrefix}, nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Pub publishes to a topic below the prefix.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, 0, false, payload)
}

// Sub subscribes to a topic below the prefix.
func (q *Queue) Sub(topic string, handler Handler) paho.Token {
	return q.Client.Subscribe(q.TopicPrefix+topic, 0, func(c paho.Client, m paho.Message) {
		t := m.Topic()
		if strings.HasPrefix(t, q.TopicPrefix) {
			t = t[len(q.TopicPrefix):]
		}
		handler(t, m.Payload())
	})
}

// Sink receives Progress events and publishes them. Like the device
// sinks, it blocks only on its own queue.
type Sink struct {
	queue *Queue
	ch    chan *msgs.Progress
}

// NewSink creates a Sink over a connected Queue.
func NewSink(q *Queue) *Sink {
	return &Sink{queue: q, ch: make(chan *msgs.Progress, QueueCap)}
}

// Name implements Named.
func (s *Sink) Name() string { return "telemetry" }

// Send enqueues a progress event without waiting. It reports false if
// the queue is full and the event was dropped.
func (s *Sink) Send(p *msgs.Progress) bool {
	select {
	case s.ch <- p:
		return true
	default:
		return false
	}
}

// Run implements Runnable.
func (s *Sink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-s.ch:
			typed, err := msgs.TypedFrom(p)
			if err != nil {
				glog.Errorf("encode progress: %v", err)
				continue
			}
			payload, err := typed.Encode()
			if err != nil {
				glog.Errorf("encode envelope: %v", err)
				continue
			}
			s.queue.Pub(ProgressTopic, payload)
		}
	}
}
