package routing

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ trackerReader = &trackerReaderMock{}

type trackerReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Tracker, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *trackerReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tracker, error) {
	if mock.GetByIDFunc == nil {
		panic("trackerReaderMock.GetByIDFunc: method is nil but trackerReader.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *trackerReaderMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
