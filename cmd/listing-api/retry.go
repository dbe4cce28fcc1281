package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// retryWithBackoff runs operation up to maxRetries times, doubling the delay
// after each failure.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.Warn(operationName+" failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("nextRetryIn", delay),
		)
		time.Sleep(delay)
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
