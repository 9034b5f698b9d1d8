package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	registryEndpoints []string
	serviceName       string
	serverAddr        string
	clientID          string
	callTimeout       time.Duration
	logLevel          string

	globalContext context.Context
	globalCancel  context.CancelFunc
)

func main() {
	globalContext, globalCancel = context.WithCancel(context.Background())

	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		sig := <-sc
		fmt.Printf("\nGot signal [%v] to exit.\n", sig)
		globalCancel()
		closeGlobal()
		os.Exit(1)
	}()

	rootCmd := &cobra.Command{
		Use:   "minikv-ctl",
		Short: "minikv command line client",
	}
	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&registryEndpoints, "registry", []string{"http://127.0.0.1:2379"}, "registry endpoints")
	flags.StringVar(&serviceName, "service", "kvstore", "service name to resolve")
	flags.StringVar(&serverAddr, "addr", "", "dial this address directly instead of resolving the service name")
	flags.StringVar(&clientID, "client-id", "", "client id sent with every request, defaults to <hostname>-<pid>")
	flags.DurationVar(&callTimeout, "timeout", 3*time.Second, "dial and per call timeout")
	flags.StringVarP(&logLevel, "log-level", "L", "info", "log level")

	rootCmd.AddCommand(
		newPutCommand(),
		newGetCommand(),
		newDeleteCommand(),
		newSeedCommand(),
		newExerciseCommand(),
		newDemoCommand(),
		newShellCommand(),
	)

	cobra.EnablePrefixMatching = true

	err := rootCmd.Execute()
	globalCancel()
	closeGlobal()
	if err != nil {
		os.Exit(1)
	}
}
