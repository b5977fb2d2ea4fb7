package recipient

import (
	"context"
	"sync"
)

var _ activityLogger = &activityLoggerMock{}

type activityLoggerMock struct {
	LogRecipientFunc func(ctx context.Context, action string, entityID string, description string, details map[string]any)

	calls struct {
		LogRecipient []struct {
			Ctx         context.Context
			Action      string
			EntityID    string
			Description string
			Details     map[string]any
		}
	}
	lockLogRecipient sync.RWMutex
}

func (mock *activityLoggerMock) LogRecipient(ctx context.Context, action string, entityID string, description string, details map[string]any) {
	if mock.LogRecipientFunc == nil {
		panic("activityLoggerMock.LogRecipientFunc: method is nil but activityLogger.LogRecipient was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Action      string
		EntityID    string
		Description string
		Details     map[string]any
	}{Ctx: ctx, Action: action, EntityID: entityID, Description: description, Details: details}
	mock.lockLogRecipient.Lock()
	mock.calls.LogRecipient = append(mock.calls.LogRecipient, callInfo)
	mock.lockLogRecipient.Unlock()
	mock.LogRecipientFunc(ctx, action, entityID, description, details)
}

func (mock *activityLoggerMock) LogRecipientCalls() []struct {
	Ctx         context.Context
	Action      string
	EntityID    string
	Description string
	Details     map[string]any
} {
	mock.lockLogRecipient.RLock()
	calls := mock.calls.LogRecipient
	mock.lockLogRecipient.RUnlock()
	return calls
}
