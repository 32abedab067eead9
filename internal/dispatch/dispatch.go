// Package dispatch executes classified queries against storage and renders
// the reply. It owns the per-query timeout, the optional Redis reply cache,
// and request collapsing for the hot free-rooms path.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/guni-dev/guni-chatbot-go/internal/errors"
	"github.com/guni-dev/guni-chatbot-go/internal/extract"
	"github.com/guni-dev/guni-chatbot-go/internal/intent"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
	"github.com/guni-dev/guni-chatbot-go/internal/metrics"
	"github.com/guni-dev/guni-chatbot-go/internal/render"
	"github.com/guni-dev/guni-chatbot-go/internal/schedule"
	"github.com/guni-dev/guni-chatbot-go/internal/storage"
)

// Queries is the storage surface the dispatcher needs. *storage.Repository
// satisfies it; tests substitute a stub.
type Queries interface {
	StudentByEnrollment(ctx context.Context, enrollment string) (*storage.Student, error)
	TeacherByID(ctx context.Context, id string) (*storage.Teacher, error)
	StudentsByPhone(ctx context.Context, phone string) ([]storage.Student, error)
	StudentsByEmail(ctx context.Context, email string) ([]storage.Student, error)
	StudentsByName(ctx context.Context, name string) ([]storage.Student, error)
	TeachersByName(ctx context.Context, name string) ([]storage.Teacher, error)
	BatchTimetable(ctx context.Context, batch, dayBinary string) ([]storage.TimetableEntry, error)
	WhereIsBatch(ctx context.Context, batch, dayBinary string, now time.Time) ([]storage.TimetableEntry, error)
	FreeRoomsNow(ctx context.Context, now time.Time) ([]storage.Room, error)
	FreeRoomsAt(ctx context.Context, startTime, endTime string) ([]storage.Room, error)
}

// Replies for failed lookups, carried to the chat layer on the wrapped
// error so the reply text stays next to the code that knows what failed.
const (
	DataAccessReply = "Sorry, I'm having trouble accessing the data right now. Please try again in a moment."
	TimeoutReply    = "That took too long to look up. Please try again."
)

// Result is a rendered reply plus the number of rows behind it.
type Result struct {
	Reply string
	Count int
}

// Config bundles the dispatcher's collaborators. Cache and Metrics are
// optional; Log falls back to a default logger.
type Config struct {
	Queries      Queries
	Cache        *Cache
	Metrics      *metrics.Metrics
	Log          *logger.Logger
	QueryTimeout time.Duration
	FallbackDay  schedule.DayCode
	RoomCacheTTL time.Duration // zero = package default
}

// Dispatcher routes a QueryContext to the matching storage operation and
// renders the result.
type Dispatcher struct {
	queries      Queries
	cache        *Cache
	metrics      *metrics.Metrics
	log          *logger.Logger
	queryTimeout time.Duration
	fallbackDay  schedule.DayCode
	roomsTTL     time.Duration
	roomsGroup   singleflight.Group
}

// New creates a dispatcher.
func New(cfg Config) *Dispatcher {
	log := cfg.Log
	if log == nil {
		log = logger.New("info")
	}
	fallback := cfg.FallbackDay
	if fallback == "" {
		fallback = schedule.DefaultFallbackDay
	}
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	roomsTTL := cfg.RoomCacheTTL
	if roomsTTL <= 0 {
		roomsTTL = roomsCacheTTL
	}
	return &Dispatcher{
		queries:      cfg.Queries,
		cache:        cfg.Cache,
		metrics:      cfg.Metrics,
		log:          log.WithModule("dispatch"),
		queryTimeout: timeout,
		fallbackDay:  fallback,
		roomsTTL:     roomsTTL,
	}
}

// Execute runs the query described by qc and renders a reply.
// Greeting and General never reach the dispatcher; the chat layer answers
// them directly.
func (d *Dispatcher) Execute(ctx context.Context, qc intent.QueryContext) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	switch qc.Intent {
	case intent.PersonLookup:
		return d.personLookup(ctx, qc)
	case intent.BatchTimetable, intent.TimetableView:
		return d.batchTimetable(ctx, qc)
	case intent.WhereIsBatch:
		return d.whereIsBatch(ctx, qc)
	case intent.RoomAvailability:
		return d.roomAvailability(ctx, qc)
	default:
		return Result{}, fmt.Errorf("intent %s is not dispatchable", qc.Intent)
	}
}

// personLookup resolves a person identifier to students or teachers.
// A name search with no student hits retries against teachers before giving
// up; people ask about professors with the same phrasing they use for
// classmates.
func (d *Dispatcher) personLookup(ctx context.Context, qc intent.QueryContext) (Result, error) {
	p := qc.Person
	if p.IsUnknown() {
		return Result{}, apperrors.ErrNoIdentifier
	}

	switch p.Kind {
	case extract.IdentStudentEnrollment:
		s, err := d.queries.StudentByEnrollment(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("student by enrollment", err)
		}
		if s == nil {
			return Result{Reply: render.Students(nil)}, nil
		}
		return Result{Reply: render.Students([]storage.Student{*s}), Count: 1}, nil

	case extract.IdentTeacherID:
		t, err := d.queries.TeacherByID(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("teacher by id", err)
		}
		if t == nil {
			return Result{Reply: render.Teachers(nil)}, nil
		}
		return Result{Reply: render.Teachers([]storage.Teacher{*t}), Count: 1}, nil

	case extract.IdentPhone:
		students, err := d.queries.StudentsByPhone(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("students by phone", err)
		}
		return Result{Reply: render.Students(students), Count: len(students)}, nil

	case extract.IdentEmail:
		students, err := d.queries.StudentsByEmail(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("students by email", err)
		}
		return Result{Reply: render.Students(students), Count: len(students)}, nil

	case extract.IdentName:
		students, err := d.queries.StudentsByName(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("students by name", err)
		}
		if len(students) > 0 {
			return Result{Reply: render.Students(students), Count: len(students)}, nil
		}

		teachers, err := d.queries.TeachersByName(ctx, p.Value)
		if err != nil {
			return Result{}, d.dataErr("teachers by name", err)
		}
		if len(teachers) > 0 {
			return Result{Reply: render.Teachers(teachers), Count: len(teachers)}, nil
		}
		return Result{Reply: render.NoPersonFoundReply}, nil

	default:
		return Result{}, apperrors.ErrNoIdentifier
	}
}

// batchTimetable fetches a batch's schedule for the named day, falling back
// to the configured day when the message names none. Sunday has no slot in
// the day encoding, so it short-circuits to ErrNoClasses.
func (d *Dispatcher) batchTimetable(ctx context.Context, qc intent.QueryContext) (Result, error) {
	if qc.ClassBatch.Kind == extract.RefNone {
		return Result{}, apperrors.MissingParameter("batch name")
	}
	batch := qc.ClassBatch.Name

	day := qc.Day
	if day == "" {
		day = d.fallbackDay
	}
	bin, ok := schedule.DayBinary(day)
	if !ok {
		return Result{}, apperrors.ErrNoClasses
	}

	cacheKey := "timetable:" + batch + ":" + string(day)
	if reply, count, ok := d.cache.Get(ctx, cacheKey); ok {
		d.recordCacheHit("reply")
		return Result{Reply: reply, Count: count}, nil
	}
	d.recordCacheMiss("reply")

	entries, err := d.queries.BatchTimetable(ctx, batch, bin)
	if err != nil {
		return Result{}, d.dataErr("batch timetable", err)
	}

	res := Result{Reply: render.Timetable(batch, day, entries), Count: len(entries)}
	// Only positive results are worth caching; a typo'd batch name should
	// not stick around for the TTL.
	if len(entries) > 0 {
		d.cache.Set(ctx, cacheKey, res.Reply, res.Count, timetableCacheTTL)
	}
	return res, nil
}

// whereIsBatch locates a batch at the request timestamp.
func (d *Dispatcher) whereIsBatch(ctx context.Context, qc intent.QueryContext) (Result, error) {
	if qc.ClassBatch.Kind == extract.RefNone {
		return Result{}, apperrors.MissingParameter("batch name")
	}
	batch := qc.ClassBatch.Name

	bin, ok := schedule.DayBinary(qc.Day)
	if !ok {
		return Result{}, apperrors.ErrNoClasses
	}

	entries, err := d.queries.WhereIsBatch(ctx, batch, bin, qc.Timestamp)
	if err != nil {
		return Result{}, d.dataErr("where is batch", err)
	}
	return Result{Reply: render.BatchLocation(batch, entries), Count: len(entries)}, nil
}

// roomAvailability lists free rooms for the parsed window. The "now" variant
// is the hot path during breaks, so concurrent identical requests collapse
// onto one query per wall-clock minute.
func (d *Dispatcher) roomAvailability(ctx context.Context, qc intent.QueryContext) (Result, error) {
	w := qc.Window
	if w == nil {
		w = &schedule.TimeWindow{IsNow: true}
	}

	var cacheKey string
	if w.IsNow {
		// Quantized to the minute: a burst of "any free rooms?" during a
		// break shares one entry without going stale across periods.
		cacheKey = "rooms:now:" + qc.Timestamp.Format("15:04")
	} else {
		cacheKey = "rooms:at:" + w.Start + "-" + w.End
	}
	if reply, count, ok := d.cache.Get(ctx, cacheKey); ok {
		d.recordCacheHit("reply")
		return Result{Reply: reply, Count: count}, nil
	}
	d.recordCacheMiss("reply")

	var (
		rooms []storage.Room
		err   error
	)
	if w.IsNow {
		v, sfErr, shared := d.roomsGroup.Do(cacheKey, func() (any, error) {
			// The flight is shared: the winning caller disconnecting must
			// not cancel the query for everyone collapsed onto it.
			qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.queryTimeout)
			defer cancel()
			return d.queries.FreeRoomsNow(qctx, qc.Timestamp)
		})
		if shared && d.metrics != nil {
			d.metrics.RecordSingleflightDedup("free_rooms_now")
		}
		if sfErr != nil {
			return Result{}, d.dataErr("free rooms now", sfErr)
		}
		rooms = v.([]storage.Room)
	} else {
		rooms, err = d.queries.FreeRoomsAt(ctx, w.Start, w.End)
		if err != nil {
			return Result{}, d.dataErr("free rooms at", err)
		}
	}

	res := Result{Reply: render.FreeRooms(rooms), Count: len(rooms)}
	d.cache.Set(ctx, cacheKey, res.Reply, res.Count, d.roomsTTL)
	return res, nil
}

// dataErr logs the raw cause and wraps it into the failure class the chat
// layer branches on, with the apology text attached to the wrapped error.
func (d *Dispatcher) dataErr(operation string, err error) error {
	w := apperrors.NewWrapper("dispatch", operation)
	if errors.Is(err, context.DeadlineExceeded) {
		d.log.Warn("query timed out", "operation", operation)
		return w.Wrap(apperrors.ErrTimeout, TimeoutReply)
	}
	d.log.Error("query failed", "operation", operation, "error", err)
	return w.Wrap(apperrors.NewDataAccessError(operation, err), DataAccessReply)
}

func (d *Dispatcher) recordCacheHit(cache string) {
	if d.metrics != nil {
		d.metrics.RecordCacheHit(cache)
	}
}

func (d *Dispatcher) recordCacheMiss(cache string) {
	if d.metrics != nil && d.cache != nil {
		d.metrics.RecordCacheMiss(cache)
	}
}
