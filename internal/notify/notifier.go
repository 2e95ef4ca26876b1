// Package notify delivers payment events to the downstream webhook and any
// configured event sinks. Delivery is best effort: failures are logged and
// counted, never returned to the payment flow.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/artcom-pay/pkg/logger"
	m "github.com/example/artcom-pay/pkg/metrics"
)

// Event is one notification. Payload becomes the top level of the envelope.
type Event struct {
	Name     string
	OrderID  string
	TestMode bool
	Payload  map[string]any
}

// Sink delivers an encoded envelope.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event, body []byte) error
}

type Notifier struct {
	sinks           []Sink
	functionVersion string
	async           bool
	timeout         time.Duration
	log             logger.Logger
	now             func() time.Time

	wg sync.WaitGroup
}

type Option func(*Notifier)

// Async detaches delivery from the caller instead of awaiting it.
func Async(on bool) Option { return func(n *Notifier) { n.async = on } }

// WithTimeout bounds each detached delivery.
func WithTimeout(d time.Duration) Option { return func(n *Notifier) { n.timeout = d } }

func WithClock(now func() time.Time) Option { return func(n *Notifier) { n.now = now } }

func New(functionVersion string, log logger.Logger, sinks []Sink, opts ...Option) *Notifier {
	n := &Notifier{
		sinks:           sinks,
		functionVersion: functionVersion,
		timeout:         10 * time.Second,
		log:             log,
		now:             time.Now,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Envelope returns the payload plus timestamp, timestamp_unix and
// function_version. The payload map is not modified.
func (n *Notifier) Envelope(ev Event) map[string]any {
	env := make(map[string]any, len(ev.Payload)+3)
	for k, v := range ev.Payload {
		env[k] = v
	}
	t := n.now().UTC()
	env["timestamp"] = t.Format("2006-01-02T15:04:05.000Z")
	env["timestamp_unix"] = t.Unix()
	env["function_version"] = n.functionVersion
	return env
}

// Notify sends ev to every sink. In synchronous mode it returns once all
// sinks have finished; in async mode it returns immediately.
func (n *Notifier) Notify(ctx context.Context, ev Event) {
	body, err := json.Marshal(n.Envelope(ev))
	if err != nil {
		n.log.Ctx(ctx).Errorw("notification encode failed", "event", ev.Name, "error", err)
		return
	}

	if !n.async {
		n.deliver(ctx, ev, body)
		return
	}

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()
		n.deliver(dctx, ev, body)
	}()
}

func (n *Notifier) deliver(ctx context.Context, ev Event, body []byte) {
	var wg sync.WaitGroup
	for _, s := range n.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			if err := s.Send(ctx, ev, body); err != nil {
				m.IncNotification(s.Name(), "error")
				n.log.Ctx(ctx).Warnw("notification failed", "sink", s.Name(), "event", ev.Name, "error", err)
				return
			}
			m.IncNotification(s.Name(), "ok")
			n.log.Ctx(ctx).Debugw("notification sent", "sink", s.Name(), "event", ev.Name)
		}(s)
	}
	wg.Wait()
}

// Wait blocks until detached deliveries finish.
func (n *Notifier) Wait() { n.wg.Wait() }

// Close waits for pending deliveries and closes sinks that hold resources.
func (n *Notifier) Close() error {
	n.Wait()
	var errs []error
	for _, s := range n.sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("notify.Close: %s: %w", s.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}
