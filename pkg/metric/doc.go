// Package metric builds line-protocol payloads for the UDP sender.
//
// SimpleMetric is a ready-to-use implementation of the influxdata
// line-protocol Metric interface, and Encode turns any number of metrics
// into a newline-delimited payload.
//
// # Usage
//
//	m := metric.New("cpu")
//	m.AddTag("host", "server1")
//	m.AddField("usage_idle", 97.5)
//
//	payload, err := metric.Encode(m)
//	if err != nil {
//	    return err
//	}
//	s.Write(payload)
package metric
