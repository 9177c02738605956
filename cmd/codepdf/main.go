package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/temirov/codepdf/internal/cli"
	"github.com/temirov/codepdf/internal/utils"
	"go.uber.org/zap"
)

// main is the entry point for the codepdf command.
func main() {
	loggerInstance, logLevel, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	applicationExecutionError := cli.Execute(ctx, loggerInstance, logLevel)
	stop()
	if applicationExecutionError != nil {
		// fang has already printed the error.
		loggerInstance.Debug(utils.ApplicationExecutionFailedMessage, zap.Error(applicationExecutionError))
		_ = loggerInstance.Sync()
		os.Exit(1)
	}
	_ = loggerInstance.Sync()
}
