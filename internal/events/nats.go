package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// NATSBus publishes events over a NATS connection so other processes
// (or future delivery workers) can observe feed changes.
type NATSBus struct {
	conn *nats.Conn
}

func ConnectNATS(url string) (*NATSBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	logrus.WithField("url", url).Info("connected to NATS")
	return &NATSBus{conn: conn}, nil
}

func (b *NATSBus) Publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.conn.Publish(subject, data)
}

func (b *NATSBus) Subscribe(subject string, handler func(data []byte)) (Subscription, error) {
	return b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

func (b *NATSBus) Close() {
	b.conn.Close()
}
