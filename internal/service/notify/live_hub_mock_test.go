package notify

import (
	"github.com/google/uuid"
	"sync"
)

var _ liveHub = &liveHubMock{}

type liveHubMock struct {
	SendToUsersFunc func(userIDs []uuid.UUID, event any) int

	calls struct {
		SendToUsers []struct {
			UserIDs []uuid.UUID
			Event   any
		}
	}
	lockSendToUsers sync.RWMutex
}

func (mock *liveHubMock) SendToUsers(userIDs []uuid.UUID, event any) int {
	if mock.SendToUsersFunc == nil {
		panic("liveHubMock.SendToUsersFunc: method is nil but liveHub.SendToUsers was just called")
	}
	callInfo := struct {
		UserIDs []uuid.UUID
		Event   any
	}{UserIDs: userIDs, Event: event}
	mock.lockSendToUsers.Lock()
	mock.calls.SendToUsers = append(mock.calls.SendToUsers, callInfo)
	mock.lockSendToUsers.Unlock()
	return mock.SendToUsersFunc(userIDs, event)
}

func (mock *liveHubMock) SendToUsersCalls() []struct {
	UserIDs []uuid.UUID
	Event   any
} {
	mock.lockSendToUsers.RLock()
	calls := mock.calls.SendToUsers
	mock.lockSendToUsers.RUnlock()
	return calls
}
