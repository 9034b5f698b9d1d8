package client

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/atomic"
)

// RequestIDGenerator hands out request ids of the form <client-id>-<start-ms>-<seq>. seq is a
// process-local counter, so ids never repeat within one generator even for calls issued in the same
// millisecond; the start time keeps them apart across restarts of the same client id.
type RequestIDGenerator struct {
	prefix string
	seq    *atomic.Uint64
}

func NewRequestIDGenerator(clientID string) *RequestIDGenerator {
	startMs := time.Now().UnixNano() / int64(time.Millisecond)
	return &RequestIDGenerator{
		prefix: clientID + "-" + strconv.FormatInt(startMs, 10),
		seq:    atomic.NewUint64(0),
	}
}

// Next returns a new request id. It is safe for concurrent use.
func (g *RequestIDGenerator) Next() string {
	return g.prefix + "-" + strconv.FormatUint(g.seq.Inc(), 10)
}

// DefaultClientID returns <hostname>-<pid>.
func DefaultClientID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
