// Package events pushes change notifications to the foyer display clients
// over MQTT so they refresh without polling. Topics carry one retained JSON
// payload per entity kind.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	TopicPublications  = "steeple/publications"
	TopicChurchDetails = "steeple/church-details"
)

// ChangeEvent is the wire payload published on entity changes.
type ChangeEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"` // created, updated, deleted
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher wraps a connected MQTT client. A nil *Publisher is a valid
// no-op, so wiring stays unconditional even when no broker is configured.
type Publisher struct {
	client mqtt.Client
}

func Connect(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

// Publish sends a retained change event. Failures are logged, never fatal;
// the displays are best-effort consumers.
func (p *Publisher) Publish(topic string, ev ChangeEvent) {
	if p == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal change event")
		return
	}
	token := p.client.Publish(topic, 1, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish change event")
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
