package logging

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type contextKey struct{}

var logDataKey contextKey

// GetLogData returns the request's LogData, or nil outside a request.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey).(*LogData)
	return logData
}

// Middleware attaches a fresh LogData to every request and emits a
// structured completion line named after the operation.
func Middleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey, logData))
		endTimer()

		operationName := ctx.Operation().OperationID
		logData.AddData("status", ctx.Status())
		logData.Log().Infof("Handler.%v.Complete", operationName)
	}
}
