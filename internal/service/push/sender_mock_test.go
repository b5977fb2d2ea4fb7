package push

import (
	"context"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ sender = &senderMock{}

type senderMock struct {
	SendFunc func(ctx context.Context, sub domain.PushSubscription, payload []byte) error

	calls struct {
		Send []struct {
			Ctx     context.Context
			Sub     domain.PushSubscription
			Payload []byte
		}
	}
	lockSend sync.RWMutex
}

func (mock *senderMock) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	if mock.SendFunc == nil {
		panic("senderMock.SendFunc: method is nil but sender.Send was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Sub     domain.PushSubscription
		Payload []byte
	}{Ctx: ctx, Sub: sub, Payload: payload}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, sub, payload)
}

func (mock *senderMock) SendCalls() []struct {
	Ctx     context.Context
	Sub     domain.PushSubscription
	Payload []byte
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
