package push

import (
	"context"
	"github.com/heartmarshall/doctrkr-backend/internal/service/activity"
	"sync"
)

var _ activityLogger = &activityLoggerMock{}

type activityLoggerMock struct {
	LogFunc func(ctx context.Context, e activity.Entry)

	calls struct {
		Log []struct {
			Ctx context.Context
			E   activity.Entry
		}
	}
	lockLog sync.RWMutex
}

func (mock *activityLoggerMock) Log(ctx context.Context, e activity.Entry) {
	if mock.LogFunc == nil {
		panic("activityLoggerMock.LogFunc: method is nil but activityLogger.Log was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   activity.Entry
	}{Ctx: ctx, E: e}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	mock.LogFunc(ctx, e)
}

func (mock *activityLoggerMock) LogCalls() []struct {
	Ctx context.Context
	E   activity.Entry
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}
