package metric

import (
	"time"

	protocol "github.com/influxdata/line-protocol"
)

// SimpleMetric is a mutable protocol.Metric.
type SimpleMetric struct {
	name      string
	tags      []*protocol.Tag
	fields    []*protocol.Field
	timestamp time.Time
}

// New returns an empty metric with the given measurement name.
func New(name string) *SimpleMetric {
	return &SimpleMetric{name: name}
}

// SetTime pins the metric timestamp. Without it Time reports the current time.
func (m *SimpleMetric) SetTime(t time.Time) {
	m.timestamp = t
}

func (m *SimpleMetric) Time() time.Time {
	if m.timestamp.IsZero() {
		return time.Now()
	}
	return m.timestamp
}

func (m *SimpleMetric) Name() string {
	return m.name
}

func (m *SimpleMetric) TagList() []*protocol.Tag {
	return m.tags
}

func (m *SimpleMetric) FieldList() []*protocol.Field {
	return m.fields
}

// AddTag appends a tag. Tags are encoded in insertion order.
func (m *SimpleMetric) AddTag(key, value string) {
	m.tags = append(m.tags, &protocol.Tag{
		Key:   key,
		Value: value,
	})
}

// AddField appends a field. Supported values are those of the line-protocol
// encoder: integers, floats, strings and booleans.
func (m *SimpleMetric) AddField(key string, value interface{}) {
	m.fields = append(m.fields, &protocol.Field{
		Key:   key,
		Value: value,
	})
}
