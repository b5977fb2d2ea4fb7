package rest

import (
	"context"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/push"
	"sync"
)

var _ pushService = &pushServiceMock{}

type pushServiceMock struct {
	SendTestFunc       func(ctx context.Context) (int, error)
	SubscribeFunc      func(ctx context.Context, input push.SubscribeInput) (domain.PushSubscription, error)
	UnsubscribeFunc    func(ctx context.Context, endpoint string) error
	VAPIDPublicKeyFunc func() (string, error)

	calls struct {
		SendTest  []struct{ Ctx context.Context }
		Subscribe []struct {
			Ctx   context.Context
			Input push.SubscribeInput
		}
		Unsubscribe []struct {
			Ctx      context.Context
			Endpoint string
		}
		VAPIDPublicKey []struct{}
	}
	lockSendTest       sync.RWMutex
	lockSubscribe      sync.RWMutex
	lockUnsubscribe    sync.RWMutex
	lockVAPIDPublicKey sync.RWMutex
}

func (mock *pushServiceMock) SendTest(ctx context.Context) (int, error) {
	if mock.SendTestFunc == nil {
		panic("pushServiceMock.SendTestFunc: method is nil but pushService.SendTest was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockSendTest.Lock()
	mock.calls.SendTest = append(mock.calls.SendTest, callInfo)
	mock.lockSendTest.Unlock()
	return mock.SendTestFunc(ctx)
}

func (mock *pushServiceMock) SendTestCalls() []struct{ Ctx context.Context } {
	mock.lockSendTest.RLock()
	calls := mock.calls.SendTest
	mock.lockSendTest.RUnlock()
	return calls
}

func (mock *pushServiceMock) Subscribe(ctx context.Context, input push.SubscribeInput) (domain.PushSubscription, error) {
	if mock.SubscribeFunc == nil {
		panic("pushServiceMock.SubscribeFunc: method is nil but pushService.Subscribe was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input push.SubscribeInput
	}{Ctx: ctx, Input: input}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, callInfo)
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(ctx, input)
}

func (mock *pushServiceMock) SubscribeCalls() []struct {
	Ctx   context.Context
	Input push.SubscribeInput
} {
	mock.lockSubscribe.RLock()
	calls := mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}

func (mock *pushServiceMock) Unsubscribe(ctx context.Context, endpoint string) error {
	if mock.UnsubscribeFunc == nil {
		panic("pushServiceMock.UnsubscribeFunc: method is nil but pushService.Unsubscribe was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Endpoint string
	}{Ctx: ctx, Endpoint: endpoint}
	mock.lockUnsubscribe.Lock()
	mock.calls.Unsubscribe = append(mock.calls.Unsubscribe, callInfo)
	mock.lockUnsubscribe.Unlock()
	return mock.UnsubscribeFunc(ctx, endpoint)
}

func (mock *pushServiceMock) UnsubscribeCalls() []struct {
	Ctx      context.Context
	Endpoint string
} {
	mock.lockUnsubscribe.RLock()
	calls := mock.calls.Unsubscribe
	mock.lockUnsubscribe.RUnlock()
	return calls
}

func (mock *pushServiceMock) VAPIDPublicKey() (string, error) {
	if mock.VAPIDPublicKeyFunc == nil {
		panic("pushServiceMock.VAPIDPublicKeyFunc: method is nil but pushService.VAPIDPublicKey was just called")
	}
	callInfo := struct{}{}
	mock.lockVAPIDPublicKey.Lock()
	mock.calls.VAPIDPublicKey = append(mock.calls.VAPIDPublicKey, callInfo)
	mock.lockVAPIDPublicKey.Unlock()
	return mock.VAPIDPublicKeyFunc()
}

func (mock *pushServiceMock) VAPIDPublicKeyCalls() []struct{} {
	mock.lockVAPIDPublicKey.RLock()
	calls := mock.calls.VAPIDPublicKey
	mock.lockVAPIDPublicKey.RUnlock()
	return calls
}
