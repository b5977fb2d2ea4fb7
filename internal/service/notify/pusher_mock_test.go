package notify

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ pusher = &pusherMock{}

type pusherMock struct {
	SendToUsersFunc func(ctx context.Context, userIDs []uuid.UUID, msg domain.PushMessage) int

	calls struct {
		SendToUsers []struct {
			Ctx     context.Context
			UserIDs []uuid.UUID
			Msg     domain.PushMessage
		}
	}
	lockSendToUsers sync.RWMutex
}

func (mock *pusherMock) SendToUsers(ctx context.Context, userIDs []uuid.UUID, msg domain.PushMessage) int {
	if mock.SendToUsersFunc == nil {
		panic("pusherMock.SendToUsersFunc: method is nil but pusher.SendToUsers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserIDs []uuid.UUID
		Msg     domain.PushMessage
	}{Ctx: ctx, UserIDs: userIDs, Msg: msg}
	mock.lockSendToUsers.Lock()
	mock.calls.SendToUsers = append(mock.calls.SendToUsers, callInfo)
	mock.lockSendToUsers.Unlock()
	return mock.SendToUsersFunc(ctx, userIDs, msg)
}

func (mock *pusherMock) SendToUsersCalls() []struct {
	Ctx     context.Context
	UserIDs []uuid.UUID
	Msg     domain.PushMessage
} {
	mock.lockSendToUsers.RLock()
	calls := mock.calls.SendToUsers
	mock.lockSendToUsers.RUnlock()
	return calls
}
