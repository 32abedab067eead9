package dispatch

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guni-dev/guni-chatbot-go/internal/config"
	"github.com/guni-dev/guni-chatbot-go/internal/extract"
	"github.com/guni-dev/guni-chatbot-go/internal/intent"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
	"github.com/guni-dev/guni-chatbot-go/internal/schedule"
	"github.com/guni-dev/guni-chatbot-go/internal/storage"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return newCacheWithClient(client, logger.NewWithWriter("error", io.Discard)), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, _, ok := c.Get(ctx, "timetable:7CE-A-2:FRI")
	assert.False(t, ok, "empty cache must miss")

	c.Set(ctx, "timetable:7CE-A-2:FRI", "some reply", 3, time.Minute)

	reply, count, ok := c.Get(ctx, "timetable:7CE-A-2:FRI")
	require.True(t, ok)
	assert.Equal(t, "some reply", reply)
	assert.Equal(t, 3, count)
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", "v", 1, time.Minute)
	mr.FastForward(2 * time.Minute)

	_, _, ok := c.Get(ctx, "k")
	assert.False(t, ok, "entry must expire after the TTL")
}

func TestCache_CorruptEntryDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("bad", "{not json"))

	_, _, ok := c.Get(ctx, "bad")
	assert.False(t, ok)
	assert.False(t, mr.Exists("bad"), "corrupt entry must be deleted")
}

func TestCache_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Cache
	ctx := context.Background()

	_, _, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Set(ctx, "k", "v", 1, time.Minute) // must not panic
	assert.NoError(t, c.Close())
}

func TestNewCache_DisabledWithoutAddr(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	c, err := NewCache(context.Background(), cfg, logger.NewWithWriter("error", io.Discard))
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewCache_ConnectsToMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{RedisAddr: mr.Addr()}
	c, err := NewCache(context.Background(), cfg, logger.NewWithWriter("error", io.Discard))
	require.NoError(t, err)
	require.NotNil(t, c)
	t.Cleanup(func() { c.Close() })
}

func TestDispatcher_TimetableUsesCache(t *testing.T) {
	c, _ := newTestCache(t)
	q := &stubQueries{entries: []storage.TimetableEntry{{
		BatchName: "7CE-A-2", SubjectName: "OS", LessonType: "lecture",
		ClassroomName: "C-201", StartTime: "09:00:00", EndTime: "10:00:00",
	}}}
	d := New(Config{
		Queries:      q,
		Cache:        c,
		Log:          logger.NewWithWriter("error", io.Discard),
		QueryTimeout: 5 * time.Second,
		FallbackDay:  schedule.DayFri,
	})

	qc := intent.QueryContext{
		Intent:     intent.BatchTimetable,
		ClassBatch: extract.ClassBatchRef{Kind: extract.RefBatch, Name: "7CE-A-2"},
		Day:        schedule.DayWed,
	}

	first, err := d.Execute(context.Background(), qc)
	require.NoError(t, err)

	second, err := d.Execute(context.Background(), qc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"BatchTimetable"}, q.calls, "second request must be served from cache")
}

func TestDispatcher_FreeRoomsNowUsesCache(t *testing.T) {
	c, _ := newTestCache(t)
	q := &stubQueries{rooms: []storage.Room{{ClassroomID: "2", Name: "C-105"}}}
	d := New(Config{
		Queries:      q,
		Cache:        c,
		Log:          logger.NewWithWriter("error", io.Discard),
		QueryTimeout: 5 * time.Second,
		FallbackDay:  schedule.DayFri,
	})

	qc := intent.QueryContext{
		Intent:    intent.RoomAvailability,
		Window:    &schedule.TimeWindow{IsNow: true},
		Timestamp: time.Date(2025, 1, 8, 14, 0, 30, 0, time.UTC),
	}

	_, err := d.Execute(context.Background(), qc)
	require.NoError(t, err)

	// Same wall-clock minute: served from cache.
	qc.Timestamp = time.Date(2025, 1, 8, 14, 0, 55, 0, time.UTC)
	_, err = d.Execute(context.Background(), qc)
	require.NoError(t, err)

	assert.Equal(t, []string{"FreeRoomsNow"}, q.calls)
}

func TestDispatcher_EmptyTimetableNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	q := &stubQueries{}
	d := New(Config{
		Queries:      q,
		Cache:        c,
		Log:          logger.NewWithWriter("error", io.Discard),
		QueryTimeout: 5 * time.Second,
		FallbackDay:  schedule.DayFri,
	})

	qc := intent.QueryContext{
		Intent:     intent.BatchTimetable,
		ClassBatch: extract.ClassBatchRef{Kind: extract.RefBatch, Name: "7XX-Z-9"},
		Day:        schedule.DayWed,
	}

	_, err := d.Execute(context.Background(), qc)
	require.NoError(t, err)
	_, err = d.Execute(context.Background(), qc)
	require.NoError(t, err)

	assert.Equal(t, []string{"BatchTimetable", "BatchTimetable"}, q.calls)
}
