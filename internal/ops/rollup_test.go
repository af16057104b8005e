package ops

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	userID int64
	text   string
}

// recordingNotifier records deliveries and fails for the listed users.
type recordingNotifier struct {
	mu     sync.Mutex
	sent   []sentMessage
	failed []int64
	failOn map[int64]bool
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failOn[userID] {
		n.failed = append(n.failed, userID)
		return fmt.Errorf("chat %d not found", userID)
	}
	n.sent = append(n.sent, sentMessage{userID: userID, text: text})
	return nil
}

func TestRollup_SummarizesPreviousDay(t *testing.T) {
	database := setupTestDB(t)
	logAt(t, database, 42, "яйца 157 12.7 125", at(10, 9, 0))
	logAt(t, database, 42, "хлеб 265 8.1 50", at(10, 23, 0))

	n := &recordingNotifier{}
	out, err := Rollup(context.Background(), database, n, RollupInput{FiredAt: at(11, 0, 0), Location: msk})
	require.NoError(t, err)

	assert.Equal(t, &RollupOutput{Date: "2026-03-10", Users: 1, Sent: 1}, out)
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(42), n.sent[0].userID)
	assert.Equal(t, "🍽️ *Итоги за 10.03:*\nКалорий: 328.8\nБелков: 19.9\nПриёмов пищи: 2", n.sent[0].text)
}

func TestRollup_FollowingDaySkipsInactiveUser(t *testing.T) {
	database := setupTestDB(t)
	logAt(t, database, 42, "яйца 157 12.7 125", at(10, 9, 0))
	logAt(t, database, 42, "хлеб 265 8.1 50", at(10, 23, 0))

	n := &recordingNotifier{}
	out, err := Rollup(context.Background(), database, n, RollupInput{FiredAt: at(12, 0, 0), Location: msk})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-11", out.Date)
	assert.Equal(t, 0, out.Users)
	assert.Empty(t, n.sent)
}

func TestRollup_SendFailureDoesNotStopOthers(t *testing.T) {
	database := setupTestDB(t)
	logAt(t, database, 1, "яйца 157 12.7 125", at(10, 9, 0))
	logAt(t, database, 2, "хлеб 265 8.1 50", at(10, 9, 0))
	logAt(t, database, 3, "творог 121 17 200", at(10, 9, 0))

	n := &recordingNotifier{failOn: map[int64]bool{1: true, 2: true}}
	out, err := Rollup(context.Background(), database, n, RollupInput{FiredAt: at(11, 0, 0), Location: msk})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Users)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, []int64{1, 2}, n.failed)
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(3), n.sent[0].userID)
}

func TestRollup_FiredLateStillUsesCalendarDay(t *testing.T) {
	database := setupTestDB(t)
	logAt(t, database, 42, "яйца 157 12.7 125", at(10, 0, 0))

	var got []int64
	n := NotifierFunc(func(_ context.Context, userID int64, _ string) error {
		got = append(got, userID)
		return nil
	})
	out, err := Rollup(context.Background(), database, n, RollupInput{FiredAt: at(11, 0, 3), Location: msk})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", out.Date)
	assert.Equal(t, []int64{42}, got)
}

func TestRollup_CancelledContext(t *testing.T) {
	database := setupTestDB(t)
	logAt(t, database, 42, "яйца 157 12.7 125", at(10, 9, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := &recordingNotifier{}
	_, err := Rollup(ctx, database, n, RollupInput{FiredAt: at(11, 0, 0), Location: msk})

	require.Error(t, err)
	assert.Empty(t, n.sent)
}
