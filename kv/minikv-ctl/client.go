package main

import (
	"strconv"

	"github.com/pingcap-incubator/minikv/kv/client"
	"github.com/pingcap-incubator/minikv/kv/dispatcher"
	"github.com/pingcap-incubator/minikv/kv/registry"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	globalLogger     *zap.Logger
	globalClient     *client.Client
	globalDispatcher *dispatcher.Dispatcher
)

func initialGlobal() error {
	lg, _, err := log.InitLogger(&log.Config{Level: logLevel, Format: "text"})
	if err != nil {
		return errors.Trace(err)
	}
	globalLogger = lg

	opts := client.Options{
		ClientID:    clientID,
		DialTimeout: callTimeout,
		CallTimeout: callTimeout,
		Logger:      globalLogger,
	}
	if serverAddr != "" {
		globalClient, err = client.DialAddr(globalContext, serverAddr, opts)
	} else {
		var reg *registry.EtcdRegistry
		reg, err = registry.NewEtcdRegistry(registryEndpoints, callTimeout, 0, globalLogger)
		if err != nil {
			return errors.WithStack(&client.ConnectionError{Target: serviceName, Err: err})
		}
		defer reg.Close()
		globalClient, err = client.Dial(globalContext, reg, serviceName, opts)
	}
	if err != nil {
		globalLogger.Error("Error connecting to kv service", zap.Error(err))
		return err
	}
	globalLogger.Debug("kv service resolved", zap.String("service", serviceName),
		zap.String("addr", globalClient.Addr()), zap.String("client-id", globalClient.ClientID()))
	globalDispatcher = dispatcher.New(globalClient, globalLogger)
	return nil
}

func closeGlobal() {
	if globalClient != nil {
		globalClient.Close()
	}
	if globalLogger != nil {
		globalLogger.Sync()
	}
}

// runWithDispatcher connects before running fn and turns a failed command into a non-zero exit.
func runWithDispatcher(fn func(args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := initialGlobal(); err != nil {
			return err
		}
		return fn(args)
	}
}

func newPutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put key value",
		Short: "Insert or overwrite a key",
		Args:  cobra.ExactArgs(2),
		RunE: runWithDispatcher(func(args []string) error {
			return globalDispatcher.Run(globalContext, dispatcher.Command{Op: dispatcher.OpPut, Key: args[0], Value: args[1]})
		}),
	}
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get key",
		Short: "Read a key",
		Args:  cobra.ExactArgs(1),
		RunE: runWithDispatcher(func(args []string) error {
			return globalDispatcher.Run(globalContext, dispatcher.Command{Op: dispatcher.OpGet, Key: args[0]})
		}),
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete key",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: runWithDispatcher(func(args []string) error {
			return globalDispatcher.Run(globalContext, dispatcher.Command{Op: dispatcher.OpDelete, Key: args[0]})
		}),
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [count]",
		Short: "Put key1..keyN with values 1..N",
		Args:  cobra.MaximumNArgs(1),
		RunE: runWithDispatcher(func(args []string) error {
			n := 10
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil {
					return errors.Annotatef(err, "invalid count %q", args[0])
				}
			}
			return reportError(globalDispatcher.Seed(globalContext, n))
		}),
	}
}

func newExerciseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise [from to]",
		Short: "Put, get and delete every key in key<from>..key<to>",
		Args:  cobra.RangeArgs(0, 2),
		RunE: runWithDispatcher(func(args []string) error {
			from, to := 11, 15
			if len(args) > 0 {
				var err error
				if len(args) != 2 {
					return errors.New("exercise takes both FROM and TO or neither")
				}
				if from, err = strconv.Atoi(args[0]); err != nil {
					return errors.Annotatef(err, "invalid from %q", args[0])
				}
				if to, err = strconv.Atoi(args[1]); err != nil {
					return errors.Annotatef(err, "invalid to %q", args[1])
				}
			}
			return reportError(globalDispatcher.Exercise(globalContext, from, to))
		}),
	}
}

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed 10 pairs, then exercise key11..key15",
		Args:  cobra.NoArgs,
		RunE: runWithDispatcher(func(args []string) error {
			seeded := globalDispatcher.Seed(globalContext, 10)
			exercised := globalDispatcher.Exercise(globalContext, 11, 15)
			if err := reportError(seeded); err != nil {
				return err
			}
			return reportError(exercised)
		}),
	}
}

func reportError(r *dispatcher.Report) error {
	if r.Failures == 0 {
		return nil
	}
	return errors.Errorf("%d of %d operations failed, first error: %v", r.Failures, r.Ops, r.Errors[0])
}
