package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/recipient"
	"sync"
)

var _ recipientService = &recipientServiceMock{}

type recipientServiceMock struct {
	CreateFunc  func(ctx context.Context, input recipient.Input) (*domain.Recipient, error)
	DeleteFunc  func(ctx context.Context, code uuid.UUID) error
	GetFunc     func(ctx context.Context, code uuid.UUID) (*domain.Recipient, error)
	ListFunc    func(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error)
	ListAllFunc func(ctx context.Context, search *string) ([]domain.Recipient, error)
	UpdateFunc  func(ctx context.Context, code uuid.UUID, input recipient.Input) (*domain.Recipient, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input recipient.Input
		}
		Delete []struct {
			Ctx  context.Context
			Code uuid.UUID
		}
		Get []struct {
			Ctx  context.Context
			Code uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.RecipientFilter
		}
		ListAll []struct {
			Ctx    context.Context
			Search *string
		}
		Update []struct {
			Ctx   context.Context
			Code  uuid.UUID
			Input recipient.Input
		}
	}
	lockCreate  sync.RWMutex
	lockDelete  sync.RWMutex
	lockGet     sync.RWMutex
	lockList    sync.RWMutex
	lockListAll sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *recipientServiceMock) Create(ctx context.Context, input recipient.Input) (*domain.Recipient, error) {
	if mock.CreateFunc == nil {
		panic("recipientServiceMock.CreateFunc: method is nil but recipientService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input recipient.Input
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *recipientServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input recipient.Input
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *recipientServiceMock) Delete(ctx context.Context, code uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("recipientServiceMock.DeleteFunc: method is nil but recipientService.Delete was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code uuid.UUID
	}{Ctx: ctx, Code: code}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, code)
}

func (mock *recipientServiceMock) DeleteCalls() []struct {
	Ctx  context.Context
	Code uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *recipientServiceMock) Get(ctx context.Context, code uuid.UUID) (*domain.Recipient, error) {
	if mock.GetFunc == nil {
		panic("recipientServiceMock.GetFunc: method is nil but recipientService.Get was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code uuid.UUID
	}{Ctx: ctx, Code: code}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, code)
}

func (mock *recipientServiceMock) GetCalls() []struct {
	Ctx  context.Context
	Code uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *recipientServiceMock) List(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error) {
	if mock.ListFunc == nil {
		panic("recipientServiceMock.ListFunc: method is nil but recipientService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.RecipientFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *recipientServiceMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.RecipientFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *recipientServiceMock) ListAll(ctx context.Context, search *string) ([]domain.Recipient, error) {
	if mock.ListAllFunc == nil {
		panic("recipientServiceMock.ListAllFunc: method is nil but recipientService.ListAll was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Search *string
	}{Ctx: ctx, Search: search}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx, search)
}

func (mock *recipientServiceMock) ListAllCalls() []struct {
	Ctx    context.Context
	Search *string
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *recipientServiceMock) Update(ctx context.Context, code uuid.UUID, input recipient.Input) (*domain.Recipient, error) {
	if mock.UpdateFunc == nil {
		panic("recipientServiceMock.UpdateFunc: method is nil but recipientService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Code  uuid.UUID
		Input recipient.Input
	}{Ctx: ctx, Code: code, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, code, input)
}

func (mock *recipientServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Code  uuid.UUID
	Input recipient.Input
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
