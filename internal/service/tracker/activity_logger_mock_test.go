package tracker

import (
	"context"
	"sync"
)

var _ activityLogger = &activityLoggerMock{}

type activityLoggerMock struct {
	LogTrackerFunc func(ctx context.Context, action string, entityID string, description string, details map[string]any)

	calls struct {
		LogTracker []struct {
			Ctx         context.Context
			Action      string
			EntityID    string
			Description string
			Details     map[string]any
		}
	}
	lockLogTracker sync.RWMutex
}

func (mock *activityLoggerMock) LogTracker(ctx context.Context, action string, entityID string, description string, details map[string]any) {
	if mock.LogTrackerFunc == nil {
		panic("activityLoggerMock.LogTrackerFunc: method is nil but activityLogger.LogTracker was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Action      string
		EntityID    string
		Description string
		Details     map[string]any
	}{Ctx: ctx, Action: action, EntityID: entityID, Description: description, Details: details}
	mock.lockLogTracker.Lock()
	mock.calls.LogTracker = append(mock.calls.LogTracker, callInfo)
	mock.lockLogTracker.Unlock()
	mock.LogTrackerFunc(ctx, action, entityID, description, details)
}

func (mock *activityLoggerMock) LogTrackerCalls() []struct {
	Ctx         context.Context
	Action      string
	EntityID    string
	Description string
	Details     map[string]any
} {
	mock.lockLogTracker.RLock()
	calls := mock.calls.LogTracker
	mock.lockLogTracker.RUnlock()
	return calls
}
