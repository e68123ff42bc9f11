package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Renal37/quickserve/internal/logger"
	"go.uber.org/zap"
)

// HandleTerminationProcess вызывает stop по первому SIGINT или SIGTERM.
// Повторный сигнал завершает процесс сразу, не дожидаясь остановки.
func HandleTerminationProcess(stop func()) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		logger.Log.Info("termination signal received", zap.String("signal", sig.String()))
		stop()

		<-c
		logger.Log.Warn("forced exit")
		os.Exit(1)
	}()
}
