package routing

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ legRepo = &legRepoMock{}

type legRepoMock struct {
	AssignFunc                 func(ctx context.Context, trackerID uuid.UUID, recipientIDs []uuid.UUID, by *uuid.UUID) ([]domain.TrackerRecipient, error)
	GetByIDForUpdateFunc       func(ctx context.Context, id uuid.UUID) (*domain.TrackerRecipient, error)
	GetByPairForUpdateFunc     func(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID) (*domain.TrackerRecipient, error)
	ListByTrackerForUpdateFunc func(ctx context.Context, trackerID uuid.UUID) ([]domain.TrackerRecipient, error)
	UpdateFunc                 func(ctx context.Context, leg *domain.TrackerRecipient) (*domain.TrackerRecipient, error)
	InboxFunc                  func(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error)
	InboxAllFunc               func(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error)
	InboxItemFunc              func(ctx context.Context, recipientID uuid.UUID, trackerID uuid.UUID) (*domain.InboxItem, error)

	calls struct {
		Assign []struct {
			Ctx          context.Context
			TrackerID    uuid.UUID
			RecipientIDs []uuid.UUID
			By           *uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByPairForUpdate []struct {
			Ctx         context.Context
			TrackerID   uuid.UUID
			RecipientID uuid.UUID
		}
		ListByTrackerForUpdate []struct {
			Ctx       context.Context
			TrackerID uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			Leg *domain.TrackerRecipient
		}
		Inbox []struct {
			Ctx context.Context
			F   domain.InboxFilter
		}
		InboxAll []struct {
			Ctx context.Context
			F   domain.InboxFilter
		}
		InboxItem []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
			TrackerID   uuid.UUID
		}
	}
	lockAssign                 sync.RWMutex
	lockGetByIDForUpdate       sync.RWMutex
	lockGetByPairForUpdate     sync.RWMutex
	lockListByTrackerForUpdate sync.RWMutex
	lockUpdate                 sync.RWMutex
	lockInbox                  sync.RWMutex
	lockInboxAll               sync.RWMutex
	lockInboxItem              sync.RWMutex
}

func (mock *legRepoMock) Assign(ctx context.Context, trackerID uuid.UUID, recipientIDs []uuid.UUID, by *uuid.UUID) ([]domain.TrackerRecipient, error) {
	if mock.AssignFunc == nil {
		panic("legRepoMock.AssignFunc: method is nil but legRepo.Assign was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		TrackerID    uuid.UUID
		RecipientIDs []uuid.UUID
		By           *uuid.UUID
	}{Ctx: ctx, TrackerID: trackerID, RecipientIDs: recipientIDs, By: by}
	mock.lockAssign.Lock()
	mock.calls.Assign = append(mock.calls.Assign, callInfo)
	mock.lockAssign.Unlock()
	return mock.AssignFunc(ctx, trackerID, recipientIDs, by)
}

func (mock *legRepoMock) AssignCalls() []struct {
	Ctx          context.Context
	TrackerID    uuid.UUID
	RecipientIDs []uuid.UUID
	By           *uuid.UUID
} {
	mock.lockAssign.RLock()
	calls := mock.calls.Assign
	mock.lockAssign.RUnlock()
	return calls
}

func (mock *legRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.TrackerRecipient, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("legRepoMock.GetByIDForUpdateFunc: method is nil but legRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *legRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *legRepoMock) GetByPairForUpdate(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID) (*domain.TrackerRecipient, error) {
	if mock.GetByPairForUpdateFunc == nil {
		panic("legRepoMock.GetByPairForUpdateFunc: method is nil but legRepo.GetByPairForUpdate was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TrackerID   uuid.UUID
		RecipientID uuid.UUID
	}{Ctx: ctx, TrackerID: trackerID, RecipientID: recipientID}
	mock.lockGetByPairForUpdate.Lock()
	mock.calls.GetByPairForUpdate = append(mock.calls.GetByPairForUpdate, callInfo)
	mock.lockGetByPairForUpdate.Unlock()
	return mock.GetByPairForUpdateFunc(ctx, trackerID, recipientID)
}

func (mock *legRepoMock) GetByPairForUpdateCalls() []struct {
	Ctx         context.Context
	TrackerID   uuid.UUID
	RecipientID uuid.UUID
} {
	mock.lockGetByPairForUpdate.RLock()
	calls := mock.calls.GetByPairForUpdate
	mock.lockGetByPairForUpdate.RUnlock()
	return calls
}

func (mock *legRepoMock) ListByTrackerForUpdate(ctx context.Context, trackerID uuid.UUID) ([]domain.TrackerRecipient, error) {
	if mock.ListByTrackerForUpdateFunc == nil {
		panic("legRepoMock.ListByTrackerForUpdateFunc: method is nil but legRepo.ListByTrackerForUpdate was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TrackerID uuid.UUID
	}{Ctx: ctx, TrackerID: trackerID}
	mock.lockListByTrackerForUpdate.Lock()
	mock.calls.ListByTrackerForUpdate = append(mock.calls.ListByTrackerForUpdate, callInfo)
	mock.lockListByTrackerForUpdate.Unlock()
	return mock.ListByTrackerForUpdateFunc(ctx, trackerID)
}

func (mock *legRepoMock) ListByTrackerForUpdateCalls() []struct {
	Ctx       context.Context
	TrackerID uuid.UUID
} {
	mock.lockListByTrackerForUpdate.RLock()
	calls := mock.calls.ListByTrackerForUpdate
	mock.lockListByTrackerForUpdate.RUnlock()
	return calls
}

func (mock *legRepoMock) Update(ctx context.Context, leg *domain.TrackerRecipient) (*domain.TrackerRecipient, error) {
	if mock.UpdateFunc == nil {
		panic("legRepoMock.UpdateFunc: method is nil but legRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Leg *domain.TrackerRecipient
	}{Ctx: ctx, Leg: leg}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, leg)
}

func (mock *legRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	Leg *domain.TrackerRecipient
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *legRepoMock) Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error) {
	if mock.InboxFunc == nil {
		panic("legRepoMock.InboxFunc: method is nil but legRepo.Inbox was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.InboxFilter
	}{Ctx: ctx, F: f}
	mock.lockInbox.Lock()
	mock.calls.Inbox = append(mock.calls.Inbox, callInfo)
	mock.lockInbox.Unlock()
	return mock.InboxFunc(ctx, f)
}

func (mock *legRepoMock) InboxCalls() []struct {
	Ctx context.Context
	F   domain.InboxFilter
} {
	mock.lockInbox.RLock()
	calls := mock.calls.Inbox
	mock.lockInbox.RUnlock()
	return calls
}

func (mock *legRepoMock) InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error) {
	if mock.InboxAllFunc == nil {
		panic("legRepoMock.InboxAllFunc: method is nil but legRepo.InboxAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.InboxFilter
	}{Ctx: ctx, F: f}
	mock.lockInboxAll.Lock()
	mock.calls.InboxAll = append(mock.calls.InboxAll, callInfo)
	mock.lockInboxAll.Unlock()
	return mock.InboxAllFunc(ctx, f)
}

func (mock *legRepoMock) InboxAllCalls() []struct {
	Ctx context.Context
	F   domain.InboxFilter
} {
	mock.lockInboxAll.RLock()
	calls := mock.calls.InboxAll
	mock.lockInboxAll.RUnlock()
	return calls
}

func (mock *legRepoMock) InboxItem(ctx context.Context, recipientID uuid.UUID, trackerID uuid.UUID) (*domain.InboxItem, error) {
	if mock.InboxItemFunc == nil {
		panic("legRepoMock.InboxItemFunc: method is nil but legRepo.InboxItem was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		TrackerID   uuid.UUID
	}{Ctx: ctx, RecipientID: recipientID, TrackerID: trackerID}
	mock.lockInboxItem.Lock()
	mock.calls.InboxItem = append(mock.calls.InboxItem, callInfo)
	mock.lockInboxItem.Unlock()
	return mock.InboxItemFunc(ctx, recipientID, trackerID)
}

func (mock *legRepoMock) InboxItemCalls() []struct {
	Ctx         context.Context
	RecipientID uuid.UUID
	TrackerID   uuid.UUID
} {
	mock.lockInboxItem.RLock()
	calls := mock.calls.InboxItem
	mock.lockInboxItem.RUnlock()
	return calls
}
