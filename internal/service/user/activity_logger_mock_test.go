package user

import (
	"context"
	"sync"
)

var _ activityLogger = &activityLoggerMock{}

type activityLoggerMock struct {
	LogUserFunc func(ctx context.Context, action string, entityID string, description string, details map[string]any)

	calls struct {
		LogUser []struct {
			Ctx         context.Context
			Action      string
			EntityID    string
			Description string
			Details     map[string]any
		}
	}
	lockLogUser sync.RWMutex
}

func (mock *activityLoggerMock) LogUser(ctx context.Context, action string, entityID string, description string, details map[string]any) {
	if mock.LogUserFunc == nil {
		panic("activityLoggerMock.LogUserFunc: method is nil but activityLogger.LogUser was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Action      string
		EntityID    string
		Description string
		Details     map[string]any
	}{Ctx: ctx, Action: action, EntityID: entityID, Description: description, Details: details}
	mock.lockLogUser.Lock()
	mock.calls.LogUser = append(mock.calls.LogUser, callInfo)
	mock.lockLogUser.Unlock()
	mock.LogUserFunc(ctx, action, entityID, description, details)
}

func (mock *activityLoggerMock) LogUserCalls() []struct {
	Ctx         context.Context
	Action      string
	EntityID    string
	Description string
	Details     map[string]any
} {
	mock.lockLogUser.RLock()
	calls := mock.calls.LogUser
	mock.lockLogUser.RUnlock()
	return calls
}
