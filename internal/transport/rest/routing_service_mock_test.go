package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ routingService = &routingServiceMock{}

type routingServiceMock struct {
	BulkUpdateFunc         func(ctx context.Context, trackerID uuid.UUID, u domain.StatusUpdate) ([]domain.TrackerRecipient, error)
	InboxFunc              func(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error)
	InboxAllFunc           func(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error)
	OpenInboxItemFunc      func(ctx context.Context, recipientID uuid.UUID, trackerID uuid.UUID) (*domain.InboxItem, error)
	RecordActionFunc       func(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)
	UpdateStatusFunc       func(ctx context.Context, legID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)
	UpdateStatusByPairFunc func(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)

	calls struct {
		BulkUpdate []struct {
			Ctx       context.Context
			TrackerID uuid.UUID
			U         domain.StatusUpdate
		}
		Inbox []struct {
			Ctx context.Context
			F   domain.InboxFilter
		}
		InboxAll []struct {
			Ctx context.Context
			F   domain.InboxFilter
		}
		OpenInboxItem []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
			TrackerID   uuid.UUID
		}
		RecordAction []struct {
			Ctx         context.Context
			TrackerID   uuid.UUID
			RecipientID uuid.UUID
			U           domain.StatusUpdate
		}
		UpdateStatus []struct {
			Ctx   context.Context
			LegID uuid.UUID
			U     domain.StatusUpdate
		}
		UpdateStatusByPair []struct {
			Ctx         context.Context
			TrackerID   uuid.UUID
			RecipientID uuid.UUID
			U           domain.StatusUpdate
		}
	}
	lockBulkUpdate         sync.RWMutex
	lockInbox              sync.RWMutex
	lockInboxAll           sync.RWMutex
	lockOpenInboxItem      sync.RWMutex
	lockRecordAction       sync.RWMutex
	lockUpdateStatus       sync.RWMutex
	lockUpdateStatusByPair sync.RWMutex
}

func (mock *routingServiceMock) BulkUpdate(ctx context.Context, trackerID uuid.UUID, u domain.StatusUpdate) ([]domain.TrackerRecipient, error) {
	if mock.BulkUpdateFunc == nil {
		panic("routingServiceMock.BulkUpdateFunc: method is nil but routingService.BulkUpdate was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TrackerID uuid.UUID
		U         domain.StatusUpdate
	}{Ctx: ctx, TrackerID: trackerID, U: u}
	mock.lockBulkUpdate.Lock()
	mock.calls.BulkUpdate = append(mock.calls.BulkUpdate, callInfo)
	mock.lockBulkUpdate.Unlock()
	return mock.BulkUpdateFunc(ctx, trackerID, u)
}

func (mock *routingServiceMock) BulkUpdateCalls() []struct {
	Ctx       context.Context
	TrackerID uuid.UUID
	U         domain.StatusUpdate
} {
	mock.lockBulkUpdate.RLock()
	calls := mock.calls.BulkUpdate
	mock.lockBulkUpdate.RUnlock()
	return calls
}

func (mock *routingServiceMock) Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error) {
	if mock.InboxFunc == nil {
		panic("routingServiceMock.InboxFunc: method is nil but routingService.Inbox was just called")
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

func (mock *routingServiceMock) InboxCalls() []struct {
	Ctx context.Context
	F   domain.InboxFilter
} {
	mock.lockInbox.RLock()
	calls := mock.calls.Inbox
	mock.lockInbox.RUnlock()
	return calls
}

func (mock *routingServiceMock) InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error) {
	if mock.InboxAllFunc == nil {
		panic("routingServiceMock.InboxAllFunc: method is nil but routingService.InboxAll was just called")
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

func (mock *routingServiceMock) InboxAllCalls() []struct {
	Ctx context.Context
	F   domain.InboxFilter
} {
	mock.lockInboxAll.RLock()
	calls := mock.calls.InboxAll
	mock.lockInboxAll.RUnlock()
	return calls
}

func (mock *routingServiceMock) OpenInboxItem(ctx context.Context, recipientID uuid.UUID, trackerID uuid.UUID) (*domain.InboxItem, error) {
	if mock.OpenInboxItemFunc == nil {
		panic("routingServiceMock.OpenInboxItemFunc: method is nil but routingService.OpenInboxItem was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		TrackerID   uuid.UUID
	}{Ctx: ctx, RecipientID: recipientID, TrackerID: trackerID}
	mock.lockOpenInboxItem.Lock()
	mock.calls.OpenInboxItem = append(mock.calls.OpenInboxItem, callInfo)
	mock.lockOpenInboxItem.Unlock()
	return mock.OpenInboxItemFunc(ctx, recipientID, trackerID)
}

func (mock *routingServiceMock) OpenInboxItemCalls() []struct {
	Ctx         context.Context
	RecipientID uuid.UUID
	TrackerID   uuid.UUID
} {
	mock.lockOpenInboxItem.RLock()
	calls := mock.calls.OpenInboxItem
	mock.lockOpenInboxItem.RUnlock()
	return calls
}

func (mock *routingServiceMock) RecordAction(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if mock.RecordActionFunc == nil {
		panic("routingServiceMock.RecordActionFunc: method is nil but routingService.RecordAction was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TrackerID   uuid.UUID
		RecipientID uuid.UUID
		U           domain.StatusUpdate
	}{Ctx: ctx, TrackerID: trackerID, RecipientID: recipientID, U: u}
	mock.lockRecordAction.Lock()
	mock.calls.RecordAction = append(mock.calls.RecordAction, callInfo)
	mock.lockRecordAction.Unlock()
	return mock.RecordActionFunc(ctx, trackerID, recipientID, u)
}

func (mock *routingServiceMock) RecordActionCalls() []struct {
	Ctx         context.Context
	TrackerID   uuid.UUID
	RecipientID uuid.UUID
	U           domain.StatusUpdate
} {
	mock.lockRecordAction.RLock()
	calls := mock.calls.RecordAction
	mock.lockRecordAction.RUnlock()
	return calls
}

func (mock *routingServiceMock) UpdateStatus(ctx context.Context, legID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if mock.UpdateStatusFunc == nil {
		panic("routingServiceMock.UpdateStatusFunc: method is nil but routingService.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		LegID uuid.UUID
		U     domain.StatusUpdate
	}{Ctx: ctx, LegID: legID, U: u}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, legID, u)
}

func (mock *routingServiceMock) UpdateStatusCalls() []struct {
	Ctx   context.Context
	LegID uuid.UUID
	U     domain.StatusUpdate
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *routingServiceMock) UpdateStatusByPair(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if mock.UpdateStatusByPairFunc == nil {
		panic("routingServiceMock.UpdateStatusByPairFunc: method is nil but routingService.UpdateStatusByPair was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TrackerID   uuid.UUID
		RecipientID uuid.UUID
		U           domain.StatusUpdate
	}{Ctx: ctx, TrackerID: trackerID, RecipientID: recipientID, U: u}
	mock.lockUpdateStatusByPair.Lock()
	mock.calls.UpdateStatusByPair = append(mock.calls.UpdateStatusByPair, callInfo)
	mock.lockUpdateStatusByPair.Unlock()
	return mock.UpdateStatusByPairFunc(ctx, trackerID, recipientID, u)
}

func (mock *routingServiceMock) UpdateStatusByPairCalls() []struct {
	Ctx         context.Context
	TrackerID   uuid.UUID
	RecipientID uuid.UUID
	U           domain.StatusUpdate
} {
	mock.lockUpdateStatusByPair.RLock()
	calls := mock.calls.UpdateStatusByPair
	mock.lockUpdateStatusByPair.RUnlock()
	return calls
}
