package sender

import (
	"errors"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	protocol "github.com/influxdata/line-protocol"

	"github.com/bft-labs/udpship/pkg/chunk"
	"github.com/bft-labs/udpship/pkg/metric"
)

const (
	singleLine = "production.example.processing_time,host=server1,datacenter=east,process_id=1,app=null,type=gauge value=0 1533321645028142080"
	lineA      = "production.example.processing_time,host=server1,datacenter=east,process_id=2,app=null,type=gauge value=0 1533321644968761088"
	lineB      = "production.example.processing_time,host=server1,datacenter=east,process_id=3,app=null,type=gauge value=0 1533321644968905984"
)

func TestNewUDPSender_Defaults(t *testing.T) {
	s := NewUDPSender("localhost", 0)

	if s.Endpoint().Host != "localhost" {
		t.Errorf("Host = %v, want localhost", s.Endpoint().Host)
	}
	if s.Endpoint().Port != 0 {
		t.Errorf("Port = %v, want 0", s.Endpoint().Port)
	}
	if s.ChunkSize() != 60000 {
		t.Errorf("ChunkSize = %v, want 60000", s.ChunkSize())
	}
	if s.LineSeparator() != DefaultLineSeparator {
		t.Errorf("LineSeparator = %q, want %q", s.LineSeparator(), DefaultLineSeparator)
	}
	if s.State() != ConnUnopened {
		t.Errorf("State = %v, want Unopened", s.State())
	}
}

func TestUDPSender_Address(t *testing.T) {
	s := NewUDPSender("localhost", 0)
	if got := s.Address(); got != "udp://localhost:0" {
		t.Errorf("Address() = %v, want udp://localhost:0", got)
	}
}

func TestUDPSender_Write(t *testing.T) {
	sample, err := os.ReadFile("testdata/sample.txt")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tests := []struct {
		name      string
		data      string
		sizeLimit int
		wantSends int
	}{
		{"empty dataset", "", 100, 0},
		{"single line", singleLine, 100, 1},
		{"single line with ending", singleLine + "\n", 100, 1},
		{"multi line", lineA + "\n" + lineB, 100, 2},
		{"short multi line", "cpu value=1\nmem value=2", 100, 1},
		{"from file", string(sample), 60000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDialer()
			s := NewUDPSender("127.0.0.1", 0,
				WithChunkSize(tt.sizeLimit),
				WithLineSeparator("\n"),
				WithDialer(d),
			)
			defer s.Close()

			if !s.Write(tt.data) {
				t.Error("Write() = false, want true")
			}
			if got := len(d.conn.writes); got != tt.wantSends {
				t.Errorf("sends = %d, want %d", got, tt.wantSends)
			}
		})
	}
}

func TestUDPSender_WriteEmptyDoesNotOpen(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithDialer(d))

	s.Write("")
	if d.dials != 0 {
		t.Errorf("dials = %d, want 0", d.dials)
	}
	if s.State() != ConnUnopened {
		t.Errorf("State = %v, want Unopened", s.State())
	}
}

func TestUDPSender_WriteContent(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithChunkSize(100), WithLineSeparator("\n"), WithDialer(d))
	defer s.Close()

	s.Write(singleLine)
	s.Write(lineA + "\n" + lineB)

	got := d.conn.sent()
	want := []string{singleLine, lineA, lineB}
	if len(got) != len(want) {
		t.Fatalf("sent %d datagrams, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("datagram[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if d.dials != 1 {
		t.Errorf("dials = %d, want 1 across writes", d.dials)
	}
}

func TestUDPSender_FixtureRoundTrip(t *testing.T) {
	sample, err := os.ReadFile("testdata/sample.txt")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithLineSeparator("\n"), WithDialer(d))
	defer s.Close()
	s.Write(string(sample))

	if got := chunk.Join(d.conn.sent(), "\n"); got != string(sample) {
		t.Errorf("reassembled payload differs from fixture (%d vs %d bytes)", len(got), len(sample))
	}
}

func TestUDPSender_FailuresAreAbsorbed(t *testing.T) {
	t.Run("dial failure", func(t *testing.T) {
		d := newFakeDialer()
		d.err = errors.New("permission denied")
		s := NewUDPSender("127.0.0.1", 0, WithChunkSize(100), WithLineSeparator("\n"), WithDialer(d))

		if !s.Write(lineA + "\n" + lineB) {
			t.Error("Write() = false, want true")
		}
		if !s.Write(singleLine) {
			t.Error("second Write() = false, want true")
		}
		if !s.IsSuccess() {
			t.Error("IsSuccess() = false, want true")
		}
		if d.dials != 1 {
			t.Errorf("dials = %d, want 1", d.dials)
		}
		if err := s.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})

	t.Run("send failure", func(t *testing.T) {
		d := newFakeDialer()
		d.conn.writeErr = errors.New("network is unreachable")
		s := NewUDPSender("127.0.0.1", 0, WithChunkSize(100), WithLineSeparator("\n"), WithDialer(d))
		defer s.Close()

		if !s.Write(lineA + "\n" + lineB) {
			t.Error("Write() = false, want true")
		}
		if len(d.conn.writes) != 2 {
			t.Errorf("attempted sends = %d, want 2", len(d.conn.writes))
		}
		if !s.IsSuccess() {
			t.Error("IsSuccess() = false, want true")
		}
	})
}

func TestUDPSender_NoWritesAfterClose(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithDialer(d))

	s.Write("cpu value=1")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	s.Write("cpu value=2")

	if len(d.conn.writes) != 1 {
		t.Errorf("writes = %d, want 1", len(d.conn.writes))
	}
	if s.State() != ConnClosed {
		t.Errorf("State = %v, want Closed", s.State())
	}
}

func TestUDPSender_WriteMetrics(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithLineSeparator("\n"), WithDialer(d))
	defer s.Close()

	m := metric.New("metric_name")
	m.SetTime(time.Unix(1, 0))
	m.AddTag("tag1", "t1")
	m.AddField("value1", 1)

	if err := s.WriteMetrics(m); err != nil {
		t.Fatalf("WriteMetrics failed: %v", err)
	}

	got := d.conn.sent()
	if len(got) != 1 || got[0] != "metric_name,tag1=t1 value1=1i 1000000000\n" {
		t.Errorf("sent = %q", got)
	}
}

func TestUDPSender_WriteMetricsUsesLineSeparator(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithChunkSize(100), WithLineSeparator("\r\n"), WithDialer(d))
	defer s.Close()

	metrics := make([]protocol.Metric, 20)
	for i := range metrics {
		m := metric.New("cpu")
		m.SetTime(time.Unix(int64(i), 0))
		m.AddTag("host", "server1")
		m.AddField("usage_idle", i)
		metrics[i] = m
	}

	if err := s.WriteMetrics(metrics...); err != nil {
		t.Fatalf("WriteMetrics failed: %v", err)
	}

	got := d.conn.sent()
	if len(got) < 2 {
		t.Fatalf("sent %d datagrams, want more than 1", len(got))
	}
	records := 0
	for i, dgram := range got {
		for _, r := range strings.Split(dgram, "\r\n") {
			if r == "" {
				continue
			}
			if !strings.HasPrefix(r, "cpu,host=server1 ") || strings.Contains(r, "\n") {
				t.Errorf("datagram[%d] has malformed record %q", i, r)
			}
			records++
		}
	}
	if records != len(metrics) {
		t.Errorf("records = %d, want %d", records, len(metrics))
	}
}

func TestUDPSender_WriteMetricsEmpty(t *testing.T) {
	d := newFakeDialer()
	s := NewUDPSender("127.0.0.1", 0, WithDialer(d))

	if err := s.WriteMetrics(); err != nil {
		t.Fatalf("WriteMetrics failed: %v", err)
	}
	if d.dials != 0 || len(d.conn.writes) != 0 {
		t.Errorf("dials = %d, writes = %d, want 0", d.dials, len(d.conn.writes))
	}
}

func TestUDPSender_Parameters(t *testing.T) {
	s := NewUDPSender("localhost", 0)
	if s.Parameters() != nil {
		t.Errorf("Parameters() = %v, want nil", s.Parameters())
	}

	s.SetParameters(map[string]interface{}{"database": "telegraf"})
	if s.Parameters()["database"] != "telegraf" {
		t.Errorf("Parameters()[database] = %v, want telegraf", s.Parameters()["database"])
	}
}

func TestUDPSender_Loopback(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	port := pc.LocalAddr().(*net.UDPAddr).Port
	s := NewUDPSender("127.0.0.1", port, WithChunkSize(100), WithLineSeparator("\n"))
	defer s.Close()

	s.Write(lineA + "\n" + lineB)
	if s.State() != ConnOpen {
		t.Fatalf("State = %v, want Open", s.State())
	}

	buf := make([]byte, 65535)
	var got []string
	for i := 0; i < 2; i++ {
		if err := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatalf("set deadline: %v", err)
		}
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			t.Fatalf("read datagram %d: %v", i, err)
		}
		got = append(got, string(buf[:n]))
	}

	if strings.Join(got, "|") != lineA+"|"+lineB {
		t.Errorf("received %q, want [%q %q]", got, lineA, lineB)
	}
}
