package nats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding every recorded session.
	StreamName = "pickr_events"

	subjectRoot = "pickr"
	retention   = 30 * 24 * time.Hour
)

// SubjectForSession returns the wildcard subject of every event in session,
// e.g. "pickr.demo.>".
func SubjectForSession(session string) string {
	return fmt.Sprintf("%s.%s.>", subjectRoot, session)
}

// SubjectForEvent returns the subject of one event kind in session,
// e.g. "pickr.demo.QUERY_CHANGED".
func SubjectForEvent(session, event string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, session, event)
}

// ParseSubject splits a subject produced by SubjectForEvent.
func ParseSubject(subject string) (session, event string, err error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 || parts[0] != subjectRoot || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("invalid subject: %s", subject)
	}
	return parts[1], parts[2], nil
}

// SetupStream creates or updates the pickr stream with 30 day retention.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{subjectRoot + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   retention,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up stream: %w", err)
	}
	return stream, nil
}

// Sessions lists the sessions that have at least one stored event, sorted.
func Sessions(ctx context.Context, stream jetstream.Stream) ([]string, error) {
	info, err := stream.Info(ctx, jetstream.WithSubjectFilter(subjectRoot+".>"))
	if err != nil {
		return nil, fmt.Errorf("reading stream info: %w", err)
	}

	seen := make(map[string]struct{})
	for subject := range info.State.Subjects {
		session, _, err := ParseSubject(subject)
		if err != nil {
			continue
		}
		seen[session] = struct{}{}
	}

	sessions := make([]string, 0, len(seen))
	for s := range seen {
		sessions = append(sessions, s)
	}
	sort.Strings(sessions)
	return sessions, nil
}
