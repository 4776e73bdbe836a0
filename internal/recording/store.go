package recording

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/logger"
	"github.com/mark3labs/pickr/internal/nats"
)

// Store appends and loads recorded events.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store on the pickr stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Append records ev for session on subject pickr.<session>.<EVENT>.
func (s *Store) Append(ctx context.Context, session string, ev combobox.Event) (*jetstream.PubAck, error) {
	rec := NewRecord(session, ev)

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}

	subject := nats.SubjectForEvent(session, rec.Event)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish to %s: %v", subject, err)
		return nil, fmt.Errorf("publishing record: %w", err)
	}

	logger.Debug("Recorded %s for %s: seq=%d", ev, session, ack.Sequence)
	return ack, nil
}

// Load reads every record of session in stream order. Messages that do not
// decode are acknowledged, logged and counted in Recording.Skipped.
func (s *Store) Load(ctx context.Context, session string) (*Recording, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject:     nats.SubjectForSession(session),
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		AckPolicy:         jetstream.AckExplicitPolicy,
		InactiveThreshold: time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	rec := &Recording{Session: session}

	const batchSize = 500
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var seq uint64
			if meta, err := msg.Metadata(); err == nil {
				seq = meta.Sequence.Stream
			}

			var r Record
			if err := json.Unmarshal(msg.Data(), &r); err != nil {
				rec.Skipped++
				logger.Warn("Skipping malformed record (seq=%d): %v", seq, err)
				_ = msg.Ack()
				continue
			}
			if _, err := r.ToEvent(); err != nil {
				rec.Skipped++
				logger.Warn("Skipping record with unknown event (seq=%d): %v", seq, err)
				_ = msg.Ack()
				continue
			}

			r.Seq = seq
			rec.Records = append(rec.Records, r)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if rec.Skipped > 0 {
		logger.Warn("Skipped %d malformed records in session %s", rec.Skipped, session)
	}
	logger.Debug("Loaded %d records for session %s", len(rec.Records), session)
	return rec, nil
}

// Reset deletes every record of session.
func (s *Store) Reset(ctx context.Context, session string) error {
	if err := s.stream.Purge(ctx, jetstream.WithPurgeSubject(nats.SubjectForSession(session))); err != nil {
		return fmt.Errorf("purging session %s: %w", session, err)
	}
	return nil
}

// Sessions lists recorded session names.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	return nats.Sessions(ctx, s.stream)
}

// publishTimeout bounds a single Recorder append.
const publishTimeout = 5 * time.Second

// Recorder appends events for one session. Failures are logged rather than
// returned so a broken stream never blocks the widget.
type Recorder struct {
	store   *Store
	session string
}

// NewRecorder binds store to session.
func NewRecorder(store *Store, session string) *Recorder {
	return &Recorder{store: store, session: session}
}

// Session returns the session name events are recorded under.
func (r *Recorder) Session() string {
	return r.session
}

// Record appends ev.
func (r *Recorder) Record(ev combobox.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if _, err := r.store.Append(ctx, r.session, ev); err != nil {
		logger.Warn("Recording %s failed: %v", ev, err)
	}
}
