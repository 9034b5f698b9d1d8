// Package dispatcher turns textual commands and batch routines into calls on a KV client.
package dispatcher

import (
	"context"
	"strconv"
	"time"

	"github.com/pingcap-incubator/minikv/kv/client"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// KV is the subset of *client.Client the dispatcher drives.
type KV interface {
	Get(ctx context.Context, key string) (client.GetResult, error)
	Put(ctx context.Context, key, value string) (client.PutResult, error)
	Delete(ctx context.Context, key string) (client.DeleteResult, error)
}

type Dispatcher struct {
	kv     KV
	logger *zap.Logger
}

func New(kv KV, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{kv: kv, logger: logger}
}

// Dispatch parses line and runs it. Any failure is logged and returned; the caller can keep going.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		d.logger.Error("invalid command", zap.String("line", line), zap.Error(err))
		return err
	}
	return d.Run(ctx, cmd)
}

// Run executes an already parsed command.
func (d *Dispatcher) Run(ctx context.Context, cmd Command) error {
	switch cmd.Op {
	case OpPut:
		return d.put(ctx, cmd.Key, cmd.Value)
	case OpGet:
		return d.get(ctx, cmd.Key)
	case OpDelete:
		return d.delete(ctx, cmd.Key)
	}
	err := errors.Annotatef(ErrUnknownOp, "%q", cmd.Op)
	d.logger.Error("invalid command", zap.Error(err))
	return err
}

func (d *Dispatcher) put(ctx context.Context, key, value string) error {
	d.logger.Debug("sending request to insert key and value", zap.String("key", key))
	res, err := d.kv.Put(ctx, key, value)
	if err != nil {
		d.logger.Error("PUT failed", zap.String("key", key), zap.String("request-id", res.RequestID), zap.Error(err))
		return err
	}
	result := "Insertion Successful"
	if !res.Success {
		result = "Insertion Failed"
	}
	d.logger.Info("PUT", zap.String("key", key), zap.String("value", value),
		zap.String("request-id", res.RequestID), zap.String("result", result))
	return nil
}

func (d *Dispatcher) get(ctx context.Context, key string) error {
	d.logger.Debug("sending request to retrieve key", zap.String("key", key))
	res, err := d.kv.Get(ctx, key)
	if err != nil {
		d.logger.Error("GET failed", zap.String("key", key), zap.String("request-id", res.RequestID), zap.Error(err))
		return err
	}
	if !res.Found {
		d.logger.Info("GET", zap.String("key", key), zap.String("request-id", res.RequestID),
			zap.String("result", "Key not found"))
		return nil
	}
	d.logger.Info("GET", zap.String("key", key), zap.String("request-id", res.RequestID),
		zap.String("value", res.Value))
	return nil
}

func (d *Dispatcher) delete(ctx context.Context, key string) error {
	d.logger.Debug("sending request to delete key", zap.String("key", key))
	res, err := d.kv.Delete(ctx, key)
	if err != nil {
		d.logger.Error("DELETE failed", zap.String("key", key), zap.String("request-id", res.RequestID), zap.Error(err))
		return err
	}
	result := "Deletion Successful"
	if !res.Found {
		result = "Key not found to delete"
	}
	d.logger.Info("DELETE", zap.String("key", key), zap.String("request-id", res.RequestID),
		zap.String("result", result))
	return nil
}

// Seed puts key1..keyN with values "1".."N", one after another.
func (d *Dispatcher) Seed(ctx context.Context, n int) *Report {
	d.logger.Info("seeding the key-value store", zap.Int("pairs", n))
	r := newReport()
	for i := 1; i <= n; i++ {
		key, value := seedPair(i)
		r.observe(func() error { return d.put(ctx, key, value) })
	}
	d.logger.Info("seeding done", r.Fields()...)
	return r
}

// Exercise runs PUT, GET, DELETE for every key in key<from>..key<to>, one after another.
func (d *Dispatcher) Exercise(ctx context.Context, from, to int) *Report {
	d.logger.Info("exercising put/get/delete", zap.Int("from", from), zap.Int("to", to))
	r := newReport()
	for i := from; i <= to; i++ {
		key, value := seedPair(i)
		r.observe(func() error { return d.put(ctx, key, value) })
		r.observe(func() error { return d.get(ctx, key) })
		r.observe(func() error { return d.delete(ctx, key) })
	}
	d.logger.Info("exercise done", r.Fields()...)
	return r
}

func seedPair(i int) (string, string) {
	v := strconv.Itoa(i)
	return "key" + v, v
}

func since(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
