package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserEvent_WireShape(t *testing.T) {
	ev := UserEvent{
		EventType: TypeUserCreated,
		UserEmail: "a@b.com",
		Timestamp: time.Date(2024, 5, 12, 9, 30, 15, 123_000_000, time.UTC),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	require.JSONEq(t, `{"eventType":"USER_CREATED","userEmail":"a@b.com","timestamp":"2024-05-12T09:30:15.123Z"}`, string(b))
}

func TestUserEvent_TimestampIsUTCWithMillisecondPrecision(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	ev := UserEvent{
		EventType: TypeUserDeleted,
		UserEmail: "a@b.com",
		// Nanosecond precision must be truncated to milliseconds and
		// the zone converted to UTC.
		Timestamp: time.Date(2024, 5, 12, 12, 30, 15, 123_456_789, loc),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "2024-05-12T09:30:15.123Z", decoded["timestamp"])
	require.Equal(t, "USER_DELETED", decoded["eventType"])
}

func TestNewUserCreated(t *testing.T) {
	before := time.Now().UTC()
	ev := NewUserCreated("a@b.com")
	after := time.Now().UTC()

	require.Equal(t, TypeUserCreated, ev.EventType)
	require.Equal(t, "a@b.com", ev.UserEmail)
	require.False(t, ev.Timestamp.Before(before))
	require.False(t, ev.Timestamp.After(after))
}
