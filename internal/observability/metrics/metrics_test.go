package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConversationMetricsObserve(t *testing.T) {
	m := NewConversationMetrics(prometheus.NewRegistry())
	m.ObserveInbound("INITIAL", "send_message")
	m.ObserveInbound("INITIAL", "send_message")
	m.ObserveClassifierFallback()
	m.ObserveTurnLatency("INITIAL", 0.05)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inboundTotal.WithLabelValues("INITIAL", "send_message")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classifierFallbacks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.turnLatency))
}

func TestNotificationMetricsObserve(t *testing.T) {
	m := NewNotificationMetrics(prometheus.NewRegistry())
	m.ObserveAttempt("delivered")
	m.ObserveAttempt("channel_error")
	m.ObserveLadder("fallback_contacts")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("channel_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ladderTotal.WithLabelValues("fallback_contacts")))
}

func TestProactiveMetricsObserve(t *testing.T) {
	m := NewProactiveMetrics(prometheus.NewRegistry())
	m.TaskStarted()
	m.TaskStarted()
	m.ObserveTick("update")
	m.TaskStopped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeTasks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticksTotal.WithLabelValues("update")))
}

func TestMetricsNilSafe(t *testing.T) {
	var c *ConversationMetrics
	c.ObserveInbound("INITIAL", "send_message")
	c.ObserveClassifierFallback()
	c.ObserveTurnLatency("INITIAL", 0.1)

	var n *NotificationMetrics
	n.ObserveAttempt("delivered")
	n.ObserveLadder("emergency")

	var p *ProactiveMetrics
	p.TaskStarted()
	p.TaskStopped()
	p.ObserveTick("idle")
}
