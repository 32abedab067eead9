// Package chat is the HTTP surface of the assistant: one POST endpoint that
// takes a free-form message and returns a reply. Everything after the
// greeting fast path goes through classify → build context → dispatch →
// render; general questions go to the LLM narrator instead.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guni-dev/guni-chatbot-go/internal/config"
	"github.com/guni-dev/guni-chatbot-go/internal/ctxutil"
	"github.com/guni-dev/guni-chatbot-go/internal/dispatch"
	apperrors "github.com/guni-dev/guni-chatbot-go/internal/errors"
	"github.com/guni-dev/guni-chatbot-go/internal/intent"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
	"github.com/guni-dev/guni-chatbot-go/internal/metrics"
	"github.com/guni-dev/guni-chatbot-go/internal/ratelimit"
	"github.com/guni-dev/guni-chatbot-go/internal/render"
	"github.com/guni-dev/guni-chatbot-go/internal/sentry"
	"github.com/guni-dev/guni-chatbot-go/internal/stringutil"
)

// Canned replies for the non-query branches. Kept as constants so tests pin
// the exact user-facing text.
const (
	EmptyMessageReply = "Please send a message."

	NoIdentifierReply = "Please provide a name, enrollment number, phone, or email to search."

	TimetableGuidanceReply = "For timetables, please specify a batch like **7CE-A-2** with a day.\n\n" +
		"Example: 'Timetable of 7CE-A-2 for Monday'"

	MissingBatchReply = "Please specify a batch name (e.g., 7CE-A-2)."

	SundayReply = "📅 No classes are scheduled on Sunday. The timetable runs Monday to Saturday."

	UnknownReply = "I couldn't understand your request. Try asking about:\n" +
		"• Student/Teacher details\n" +
		"• Batch timetables\n" +
		"• Free classrooms"

	GeneralFallbackReply = "I'm not sure how to answer that. Could you rephrase your question?"
	GeneralErrorReply    = "Sorry, I encountered an error. Please try asking again."

	DataAccessReply = dispatch.DataAccessReply
	TimeoutReply    = dispatch.TimeoutReply
	RateLimitReply  = "You're sending messages too quickly. Please wait a moment and try again."
	PanicReply      = "Something went wrong. Please try again."
)

// Request is the inbound chat payload.
type Request struct {
	Message string `json:"message"`
}

// Response is the chat reply. ResultCount is only present for query intents
// that hit the database.
type Response struct {
	Reply       string `json:"reply"`
	ResultCount *int   `json:"result_count,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Narrator answers general questions and rewrites person lookup results as
// conversational text. *genai.FallbackNarrator satisfies it; a nil Narrator
// disables the LLM paths.
type Narrator interface {
	Answer(ctx context.Context, question string) (string, error)
	Narrate(ctx context.Context, card string) (string, error)
	IsEnabled() bool
}

// Config bundles the handler's collaborators. Narrator, Limiter and Metrics
// are optional.
type Config struct {
	Builder    *intent.Builder
	Dispatcher *dispatch.Dispatcher
	Narrator   Narrator
	Limiter    *ratelimit.PerClientLimiter
	Metrics    *metrics.Metrics
	Log        *logger.Logger
	LLMTimeout time.Duration // zero = config.ChatLLMTimeout
}

// Handler serves the chat endpoint.
type Handler struct {
	builder    *intent.Builder
	dispatcher *dispatch.Dispatcher
	narrator   Narrator
	limiter    *ratelimit.PerClientLimiter
	metrics    *metrics.Metrics
	log        *logger.Logger
	llmTimeout time.Duration
}

// NewHandler creates the chat handler.
func NewHandler(cfg Config) *Handler {
	log := cfg.Log
	if log == nil {
		log = logger.New("info")
	}
	llmTimeout := cfg.LLMTimeout
	if llmTimeout <= 0 {
		llmTimeout = config.ChatLLMTimeout
	}
	return &Handler{
		builder:    cfg.Builder,
		dispatcher: cfg.Dispatcher,
		narrator:   cfg.Narrator,
		limiter:    cfg.Limiter,
		metrics:    cfg.Metrics,
		log:        log.WithModule("chat"),
		llmTimeout: llmTimeout,
	}
}

// Handle serves POST /chat. Replies are always 200 with a text the user can
// read; only transport-level problems (bad JSON, rate limiting) get non-200
// status codes.
func (h *Handler) Handle(c *gin.Context) {
	requestID := uuid.NewString()
	clientIP := c.ClientIP()

	ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
	ctx = ctxutil.WithClientIP(ctx, clientIP)
	log := h.log.WithRequestID(requestID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("chat handler panicked", "panic", r)
			sentry.CaptureMessage("chat handler panic")
			if h.metrics != nil {
				h.metrics.RecordHTTPError("panic", "chat")
			}
			c.JSON(http.StatusOK, Response{Reply: PanicReply, Error: "internal error"})
		}
	}()

	if h.limiter != nil && !h.limiter.Allow(clientIP) {
		if h.metrics != nil {
			h.metrics.RecordRateLimiterDrop("chat")
		}
		c.JSON(http.StatusTooManyRequests, Response{Reply: RateLimitReply, Error: apperrors.ErrRateLimitExceeded.Error()})
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.metrics != nil {
			h.metrics.RecordHTTPError("bad_request", "chat")
		}
		c.JSON(http.StatusBadRequest, Response{Reply: EmptyMessageReply, Error: "invalid request body"})
		return
	}

	message := stringutil.CollapseSpaces(req.Message)
	if message == "" {
		resp, _ := h.replyForError(log, apperrors.ErrEmptyMessage)
		c.JSON(http.StatusOK, resp)
		return
	}

	it := intent.Classify(message)
	log.Info("message classified", "intent", it.String(), "client_ip", clientIP)

	start := time.Now()
	resp, status := h.respond(ctx, log, it, message)
	if h.metrics != nil {
		h.metrics.RecordChatRequest(it.String(), status, time.Since(start).Seconds())
	}

	c.JSON(http.StatusOK, resp)
}

// respond produces the reply for a classified non-empty message. The second
// return value is the status label for metrics.
func (h *Handler) respond(ctx context.Context, log *logger.Logger, it intent.Intent, message string) (Response, string) {
	switch it {
	case intent.Greeting:
		return Response{Reply: render.GreetingReply}, "ok"

	case intent.General:
		return h.general(ctx, log, message)

	case intent.TimetableView:
		// The view intent means "timetable-shaped but no full batch token";
		// asking for the exact format beats guessing.
		return Response{Reply: TimetableGuidanceReply}, "ok"

	default:
		qc := h.builder.Build(message, it)
		res, err := h.dispatcher.Execute(ctx, qc)
		if err != nil {
			return h.replyForError(log, err)
		}
		if it == intent.PersonLookup && res.Count > 0 {
			return h.narratePerson(ctx, log, res)
		}
		return Response{Reply: res.Reply, ResultCount: &res.Count}, "ok"
	}
}

// narratePerson rewrites a deterministic person card through the narrator
// chain. Narration failures fall back to the card; a lookup never fails
// because the LLM did.
func (h *Handler) narratePerson(ctx context.Context, log *logger.Logger, res dispatch.Result) (Response, string) {
	if h.narrator == nil || !h.narrator.IsEnabled() {
		return Response{Reply: res.Reply, ResultCount: &res.Count}, "ok"
	}

	ctx, cancel := context.WithTimeout(ctx, h.llmTimeout)
	defer cancel()

	narrative, err := h.narrator.Narrate(ctx, res.Reply)
	if err != nil {
		log.Warn("using deterministic reply",
			"error", fmt.Errorf("%w: %w", apperrors.ErrRenderUnavailable, err))
		return Response{Reply: res.Reply, ResultCount: &res.Count}, "render_fallback"
	}
	if narrative == "" {
		return Response{Reply: res.Reply, ResultCount: &res.Count}, "render_fallback"
	}
	return Response{Reply: narrative, ResultCount: &res.Count}, "ok"
}

// general answers a free-form question through the narrator chain, degrading
// to canned replies when no provider is configured or all of them fail.
func (h *Handler) general(ctx context.Context, log *logger.Logger, message string) (Response, string) {
	if h.narrator == nil || !h.narrator.IsEnabled() {
		return Response{Reply: GeneralFallbackReply}, "no_narrator"
	}

	ctx, cancel := context.WithTimeout(ctx, h.llmTimeout)
	defer cancel()

	answer, err := h.narrator.Answer(ctx, message)
	if err != nil {
		log.Warn("narration failed", "error", err)
		sentry.CaptureException(err)
		return Response{Reply: GeneralErrorReply}, "narration_error"
	}
	if answer == "" {
		return Response{Reply: GeneralFallbackReply}, "empty_answer"
	}
	return Response{Reply: answer}, "ok"
}

// replyForError maps the failure taxonomy to user-facing text. Every branch
// answers with something actionable; raw error details stay in the logs.
func (h *Handler) replyForError(log *logger.Logger, err error) (Response, string) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyMessage):
		return Response{Reply: EmptyMessageReply}, "empty_message"

	case errors.Is(err, apperrors.ErrNoIdentifier):
		return Response{Reply: NoIdentifierReply}, "no_identifier"

	case errors.Is(err, apperrors.ErrMissingParameter):
		var pe *apperrors.ParameterError
		if errors.As(err, &pe) && pe.Field == "day" {
			return Response{Reply: TimetableGuidanceReply}, "missing_parameter"
		}
		return Response{Reply: MissingBatchReply}, "missing_parameter"

	case errors.Is(err, apperrors.ErrNoClasses):
		return Response{Reply: SundayReply}, "ok"

	case errors.Is(err, apperrors.ErrTimeout):
		log.Warn("query timed out", "error", err)
		return Response{Reply: userReply(err, TimeoutReply), Error: "timeout"}, "timeout"

	case errors.Is(err, apperrors.ErrDataAccess):
		log.Error("data access failed", "error", err)
		sentry.CaptureException(err)
		return Response{Reply: userReply(err, DataAccessReply), Error: "data access failure"}, "error"

	default:
		log.Error("unhandled dispatch error", "error", err)
		sentry.CaptureException(err)
		return Response{Reply: UnknownReply, Error: "internal error"}, "error"
	}
}

// userReply prefers the reply text carried on a wrapped error over the
// handler's generic fallback.
func userReply(err error, fallback string) string {
	if msg := apperrors.GetUserMessage(err); msg != "" {
		return msg
	}
	return fallback
}
