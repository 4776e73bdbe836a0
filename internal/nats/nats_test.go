package nats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "pickr.demo.>", SubjectForSession("demo"))
	assert.Equal(t, "pickr.demo.FOCUS", SubjectForEvent("demo", "FOCUS"))

	session, event, err := ParseSubject("pickr.demo.QUERY_CHANGED")
	require.NoError(t, err)
	assert.Equal(t, "demo", session)
	assert.Equal(t, "QUERY_CHANGED", event)

	for _, bad := range []string{"pickr.demo", "other.demo.FOCUS", "pickr..FOCUS", "pickr.a.b.c"} {
		_, _, err := ParseSubject(bad)
		assert.Error(t, err, bad)
	}
}

func TestStartPublishAndSessions(t *testing.T) {
	e, err := Start(t.TempDir())
	require.NoError(t, err)
	defer func() { assert.NoError(t, e.Close()) }()

	ctx := context.Background()
	stream, err := SetupStream(ctx, e.JS)
	require.NoError(t, err)

	// Setting up again must be idempotent.
	_, err = SetupStream(ctx, e.JS)
	require.NoError(t, err)

	for _, subject := range []string{
		SubjectForEvent("beta", "FOCUS"),
		SubjectForEvent("alpha", "FOCUS"),
		SubjectForEvent("alpha", "DOWN"),
	} {
		_, err := e.JS.Publish(ctx, subject, []byte("{}"))
		require.NoError(t, err)
	}

	sessions, err := Sessions(ctx, stream)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, sessions)
}

func TestShutdownNil(t *testing.T) {
	assert.NoError(t, Shutdown(nil, nil))
	var e *Embedded
	assert.NoError(t, e.Close())
}
