package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.ChatRequestsTotal == nil {
		t.Error("ChatRequestsTotal is nil")
	}
	if m.ChatDurationSeconds == nil {
		t.Error("ChatDurationSeconds is nil")
	}
	if m.QueryDurationSeconds == nil {
		t.Error("QueryDurationSeconds is nil")
	}
	if m.QueryErrorsTotal == nil {
		t.Error("QueryErrorsTotal is nil")
	}
	if m.LLMCallsTotal == nil {
		t.Error("LLMCallsTotal is nil")
	}
	if m.LLMDurationSeconds == nil {
		t.Error("LLMDurationSeconds is nil")
	}
	if m.CacheHitsTotal == nil {
		t.Error("CacheHitsTotal is nil")
	}
	if m.CacheMissesTotal == nil {
		t.Error("CacheMissesTotal is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
	if m.SingleflightDedupTotal == nil {
		t.Error("SingleflightDedupTotal is nil")
	}
}

func TestRecordChatRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordChatRequest("PERSON_LOOKUP", "success", 0.2)
	m.RecordChatRequest("BATCH_TIMETABLE", "error", 1.0)
	m.RecordChatRequest("GENERAL", "timeout", 20.0)
}

func TestRecordQuery(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordQuery("person_by_enrollment", 0.01)
	m.RecordQuery("batch_timetable", 0.05)
	m.RecordQueryError("free_rooms")
}

func TestRecordLLMCall(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordLLMCall("gemini", "success", 2.5)
	m.RecordLLMCall("groq", "error", 5.0)
}

func TestRecordCacheHitAndMiss(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordCacheHit("free_rooms")
	m.RecordCacheMiss("free_rooms")
	m.RecordCacheHit("reply")
}

func TestRecordHTTPError(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPError("timeout", "chat")
	m.RecordHTTPError("rate_limit", "chat")
	m.RecordHTTPError("bad_request", "chat")
}

func TestRecordRateLimiterDrop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordRateLimiterDrop("client")
	m.RecordRateLimiterDrop("global")
}

func TestRecordSingleflightDedup(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordSingleflightDedup("free_rooms")
}

func TestMetrics_WithDefaultRegistry(t *testing.T) {
	// Test that metrics can be created with a new registry
	// without conflicting with default registry
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Record some metrics
	m.RecordChatRequest("PERSON_LOOKUP", "success", 0.1)
	m.RecordCacheHit("free_rooms")
	m.RecordQuery("batch_timetable", 0.02)

	// Gather metrics to verify they were recorded
	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Should have metrics registered
	if len(metricFamilies) == 0 {
		t.Error("No metrics were gathered")
	}

	// Check for specific metric names
	expectedMetrics := map[string]bool{
		"guni_chat_requests_total":       false,
		"guni_chat_duration_seconds":     false,
		"guni_cache_hits_total":          false,
		"guni_db_query_duration_seconds": false,
	}

	for _, mf := range metricFamilies {
		if _, ok := expectedMetrics[mf.GetName()]; ok {
			expectedMetrics[mf.GetName()] = true
		}
	}

	for name, found := range expectedMetrics {
		if !found {
			t.Errorf("Expected metric %q not found", name)
		}
	}
}
