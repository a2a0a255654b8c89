package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters for the conversation engine.
type ConversationMetrics struct {
	inboundTotal        *prometheus.CounterVec
	classifierFallbacks prometheus.Counter
	turnLatency         *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "djobea",
			Subsystem: "conversation",
			Name:      "inbound_messages_total",
			Help:      "Total inbound user messages",
		}, []string{"state", "action"}),
		classifierFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "djobea",
			Subsystem: "conversation",
			Name:      "classifier_fallback_total",
			Help:      "Turns resolved by the LLM intent classifier",
		}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "djobea",
			Subsystem: "conversation",
			Name:      "turn_latency_seconds",
			Help:      "Latency of one conversation turn",
			Buckets:   prometheus.DefBuckets,
		}, []string{"state"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.classifierFallbacks, m.turnLatency)
	return m
}

func (m *ConversationMetrics) ObserveInbound(state, action string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(state, action).Inc()
}

func (m *ConversationMetrics) ObserveClassifierFallback() {
	if m == nil {
		return
	}
	m.classifierFallbacks.Inc()
}

func (m *ConversationMetrics) ObserveTurnLatency(state string, seconds float64) {
	if m == nil {
		return
	}
	m.turnLatency.WithLabelValues(state).Observe(seconds)
}

// NotificationMetrics exposes counters for the provider notification protocol.
type NotificationMetrics struct {
	attemptsTotal *prometheus.CounterVec
	ladderTotal   *prometheus.CounterVec
}

func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	m := &NotificationMetrics{
		attemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "djobea",
			Subsystem: "notifications",
			Name:      "attempts_total",
			Help:      "Provider notification attempts by outcome",
		}, []string{"outcome"}),
		ladderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "djobea",
			Subsystem: "notifications",
			Name:      "ladder_total",
			Help:      "Fallback ladder resolutions by rung",
		}, []string{"rung"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.attemptsTotal, m.ladderTotal)
	return m
}

func (m *NotificationMetrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}
	m.attemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *NotificationMetrics) ObserveLadder(rung string) {
	if m == nil {
		return
	}
	m.ladderTotal.WithLabelValues(rung).Inc()
}

// ProactiveMetrics exposes gauges/counters for per-request update tasks.
type ProactiveMetrics struct {
	activeTasks prometheus.Gauge
	ticksTotal  *prometheus.CounterVec
}

func NewProactiveMetrics(reg prometheus.Registerer) *ProactiveMetrics {
	m := &ProactiveMetrics{
		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "djobea",
			Subsystem: "proactive",
			Name:      "active_tasks",
			Help:      "Currently running per-request update tasks",
		}),
		ticksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "djobea",
			Subsystem: "proactive",
			Name:      "ticks_total",
			Help:      "Proactive loop ticks by decision",
		}, []string{"decision"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.activeTasks, m.ticksTotal)
	return m
}

func (m *ProactiveMetrics) TaskStarted() {
	if m == nil {
		return
	}
	m.activeTasks.Inc()
}

func (m *ProactiveMetrics) TaskStopped() {
	if m == nil {
		return
	}
	m.activeTasks.Dec()
}

func (m *ProactiveMetrics) ObserveTick(decision string) {
	if m == nil {
		return
	}
	m.ticksTotal.WithLabelValues(decision).Inc()
}
