package analytics

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ recipientLookup = &recipientLookupMock{}

type recipientLookupMock struct {
	GetByCodeFunc func(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)

	calls struct {
		GetByCode []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByCode sync.RWMutex
}

func (mock *recipientLookupMock) GetByCode(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	if mock.GetByCodeFunc == nil {
		panic("recipientLookupMock.GetByCodeFunc: method is nil but recipientLookup.GetByCode was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByCode.Lock()
	mock.calls.GetByCode = append(mock.calls.GetByCode, callInfo)
	mock.lockGetByCode.Unlock()
	return mock.GetByCodeFunc(ctx, id)
}

func (mock *recipientLookupMock) GetByCodeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByCode.RLock()
	calls := mock.calls.GetByCode
	mock.lockGetByCode.RUnlock()
	return calls
}
