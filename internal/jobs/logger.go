package jobs

import "go.uber.org/zap"

// cronLogger routes cron's own messages (job panics, skipped runs) to the
// global zap logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.L().Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.L().Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
