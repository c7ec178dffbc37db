package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    NotificationStatus
		label     string
		completed bool
		canSend   bool
	}{
		{StatusPending, "Pending", false, true},
		{StatusSent, "Sent", true, false},
		{StatusFailed, "Failed", false, false},
		{StatusDelivered, "Delivered", true, false},
		{StatusArchived, "Archived", true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.completed, tt.status.IsCompleted())
			assert.Equal(t, tt.canSend, tt.status.CanBeSent())
		})
	}
}

func TestParseNotificationStatus(t *testing.T) {
	t.Parallel()

	t.Run("定義済みの状態を変換できること", func(t *testing.T) {
		t.Parallel()
		for _, st := range Statuses() {
			got, err := ParseNotificationStatus(string(st))
			require.NoError(t, err)
			assert.Equal(t, st, got)
		}
	})

	t.Run("未定義の状態はエラーになること", func(t *testing.T) {
		t.Parallel()
		_, err := ParseNotificationStatus("queued")
		assert.Error(t, err)
	})
}
