// Package telemetry publishes choreo settle events to an MQTT broker.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/phanxgames/choreo"
)

// Publisher is the part of mqtt.Client the sink needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Message is the JSON payload published for each settle event.
type Message struct {
	ID        string    `json:"id"`
	Scheduler string    `json:"scheduler,omitempty"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Frame     uint64    `json:"frame"`
	Time      time.Time `json:"time"`
}

// MQTTSink is a choreo.EventSink that publishes settle events as JSON. It
// never waits on the broker; call Flush to collect delivery errors.
type MQTTSink struct {
	pub    Publisher
	topic  string
	qos    byte
	source string
	logger *slog.Logger

	newID func() string
	now   func() time.Time

	mu      sync.Mutex
	pending []mqtt.Token
}

// NewMQTTSink returns a sink publishing to cfg.Topic at cfg.QoS. source names
// the publishing scheduler in each message.
func NewMQTTSink(pub Publisher, cfg choreo.MQTTConfig, source string) *MQTTSink {
	return &MQTTSink{
		pub:    pub,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		source: source,
		logger: slog.Default(),
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
		now:    time.Now,
	}
}

// SetLogger replaces the logger used for encoding failures.
func (s *MQTTSink) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// EmitEvent publishes event without blocking. Implements choreo.EventSink.
func (s *MQTTSink) EmitEvent(event choreo.SettleEvent) {
	b, err := json.Marshal(Message{
		ID:        s.newID(),
		Scheduler: s.source,
		Kind:      event.Kind.String(),
		Name:      event.Name,
		Frame:     event.Frame,
		Time:      s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("encode settle event", "item", event.Name, "error", err)
		return
	}
	token := s.pub.Publish(s.topic, s.qos, false, b)

	s.mu.Lock()
	s.pending = append(s.pending, token)
	s.mu.Unlock()
}

// Pending returns the number of publishes not yet flushed.
func (s *MQTTSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush waits up to timeout for each outstanding publish and returns the
// joined delivery errors.
func (s *MQTTSink) Flush(timeout time.Duration) error {
	s.mu.Lock()
	tokens := s.pending
	s.pending = nil
	s.mu.Unlock()

	var errs []error
	for _, tok := range tokens {
		if !tok.WaitTimeout(timeout) {
			errs = append(errs, fmt.Errorf("publish to %q: timed out after %v", s.topic, timeout))
			continue
		}
		if err := tok.Error(); err != nil {
			errs = append(errs, fmt.Errorf("publish to %q: %w", s.topic, err))
		}
	}
	return errors.Join(errs...)
}

// ClientOptions builds paho client options from cfg.
func ClientOptions(cfg choreo.MQTTConfig) *mqtt.ClientOptions {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "choreo"
	}
	return mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
}

// Dial connects to the broker in cfg, waiting up to timeout.
func Dial(cfg choreo.MQTTConfig, timeout time.Duration) (mqtt.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("telemetry: no broker url configured")
	}
	client := mqtt.NewClient(ClientOptions(cfg))
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect %s: timed out after %v", cfg.URL, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	return client, nil
}
