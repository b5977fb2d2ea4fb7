package notify

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	ListIDsByRecipientFunc func(ctx context.Context, recipientIDs []uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		ListIDsByRecipient []struct {
			Ctx          context.Context
			RecipientIDs []uuid.UUID
		}
	}
	lockListIDsByRecipient sync.RWMutex
}

func (mock *userDirectoryMock) ListIDsByRecipient(ctx context.Context, recipientIDs []uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListIDsByRecipientFunc == nil {
		panic("userDirectoryMock.ListIDsByRecipientFunc: method is nil but userDirectory.ListIDsByRecipient was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RecipientIDs []uuid.UUID
	}{Ctx: ctx, RecipientIDs: recipientIDs}
	mock.lockListIDsByRecipient.Lock()
	mock.calls.ListIDsByRecipient = append(mock.calls.ListIDsByRecipient, callInfo)
	mock.lockListIDsByRecipient.Unlock()
	return mock.ListIDsByRecipientFunc(ctx, recipientIDs)
}

func (mock *userDirectoryMock) ListIDsByRecipientCalls() []struct {
	Ctx          context.Context
	RecipientIDs []uuid.UUID
} {
	mock.lockListIDsByRecipient.RLock()
	calls := mock.calls.ListIDsByRecipient
	mock.lockListIDsByRecipient.RUnlock()
	return calls
}
