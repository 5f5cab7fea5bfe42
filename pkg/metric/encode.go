package metric

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	protocol "github.com/influxdata/line-protocol"
)

// Encode returns the line-protocol payload for metrics, one line per metric.
func Encode(metrics ...protocol.Metric) (string, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, metrics...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EncodeTo writes the line-protocol encoding of metrics to w.
func EncodeTo(w io.Writer, metrics ...protocol.Metric) error {
	encoder := protocol.NewEncoder(w)
	for _, m := range metrics {
		if _, err := encoder.Encode(m); err != nil {
			return fmt.Errorf("encode %s: %w", m.Name(), err)
		}
	}
	return nil
}

// EncodeLines returns one line-protocol record per metric, without line
// endings, so callers can join them with their own separator.
func EncodeLines(metrics ...protocol.Metric) ([]string, error) {
	lines := make([]string, 0, len(metrics))
	var buf bytes.Buffer
	encoder := protocol.NewEncoder(&buf)
	for _, m := range metrics {
		buf.Reset()
		if _, err := encoder.Encode(m); err != nil {
			return nil, fmt.Errorf("encode %s: %w", m.Name(), err)
		}
		lines = append(lines, strings.TrimSuffix(buf.String(), "\n"))
	}
	return lines, nil
}
