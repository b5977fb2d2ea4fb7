package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/tracker"
	"io"
	"sync"
)

var _ trackerService = &trackerServiceMock{}

type trackerServiceMock struct {
	AssignRecipientsFunc func(ctx context.Context, id uuid.UUID, recipientIDs []uuid.UUID) ([]domain.RoutingLeg, error)
	CreateFunc           func(ctx context.Context, input tracker.CreateInput) (*domain.TrackerDetail, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	GetFunc              func(ctx context.Context, id uuid.UUID) (*domain.TrackerDetail, error)
	ListFunc             func(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error)
	OpenAttachmentFunc   func(ctx context.Context, id uuid.UUID, kind tracker.AttachmentKind) (io.ReadCloser, string, error)
	RemoveRecipientFunc  func(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) error
	ToggleArchiveFunc    func(ctx context.Context, id uuid.UUID) (*domain.Tracker, error)
	UpdateFunc           func(ctx context.Context, id uuid.UUID, input tracker.UpdateInput) (*domain.Tracker, error)
	UpdateLCEFunc        func(ctx context.Context, id uuid.UUID, u domain.LCEUpdate) (*domain.Tracker, error)

	calls struct {
		AssignRecipients []struct {
			Ctx          context.Context
			ID           uuid.UUID
			RecipientIDs []uuid.UUID
		}
		Create []struct {
			Ctx   context.Context
			Input tracker.CreateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.TrackerFilter
		}
		OpenAttachment []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Kind tracker.AttachmentKind
		}
		RemoveRecipient []struct {
			Ctx         context.Context
			ID          uuid.UUID
			RecipientID uuid.UUID
		}
		ToggleArchive []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input tracker.UpdateInput
		}
		UpdateLCE []struct {
			Ctx context.Context
			ID  uuid.UUID
			U   domain.LCEUpdate
		}
	}
	lockAssignRecipients sync.RWMutex
	lockCreate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockGet              sync.RWMutex
	lockList             sync.RWMutex
	lockOpenAttachment   sync.RWMutex
	lockRemoveRecipient  sync.RWMutex
	lockToggleArchive    sync.RWMutex
	lockUpdate           sync.RWMutex
	lockUpdateLCE        sync.RWMutex
}

func (mock *trackerServiceMock) AssignRecipients(ctx context.Context, id uuid.UUID, recipientIDs []uuid.UUID) ([]domain.RoutingLeg, error) {
	if mock.AssignRecipientsFunc == nil {
		panic("trackerServiceMock.AssignRecipientsFunc: method is nil but trackerService.AssignRecipients was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		ID           uuid.UUID
		RecipientIDs []uuid.UUID
	}{Ctx: ctx, ID: id, RecipientIDs: recipientIDs}
	mock.lockAssignRecipients.Lock()
	mock.calls.AssignRecipients = append(mock.calls.AssignRecipients, callInfo)
	mock.lockAssignRecipients.Unlock()
	return mock.AssignRecipientsFunc(ctx, id, recipientIDs)
}

func (mock *trackerServiceMock) AssignRecipientsCalls() []struct {
	Ctx          context.Context
	ID           uuid.UUID
	RecipientIDs []uuid.UUID
} {
	mock.lockAssignRecipients.RLock()
	calls := mock.calls.AssignRecipients
	mock.lockAssignRecipients.RUnlock()
	return calls
}

func (mock *trackerServiceMock) Create(ctx context.Context, input tracker.CreateInput) (*domain.TrackerDetail, error) {
	if mock.CreateFunc == nil {
		panic("trackerServiceMock.CreateFunc: method is nil but trackerService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tracker.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *trackerServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input tracker.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *trackerServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("trackerServiceMock.DeleteFunc: method is nil but trackerService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *trackerServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *trackerServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.TrackerDetail, error) {
	if mock.GetFunc == nil {
		panic("trackerServiceMock.GetFunc: method is nil but trackerService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *trackerServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *trackerServiceMock) List(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error) {
	if mock.ListFunc == nil {
		panic("trackerServiceMock.ListFunc: method is nil but trackerService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.TrackerFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *trackerServiceMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.TrackerFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *trackerServiceMock) OpenAttachment(ctx context.Context, id uuid.UUID, kind tracker.AttachmentKind) (io.ReadCloser, string, error) {
	if mock.OpenAttachmentFunc == nil {
		panic("trackerServiceMock.OpenAttachmentFunc: method is nil but trackerService.OpenAttachment was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Kind tracker.AttachmentKind
	}{Ctx: ctx, ID: id, Kind: kind}
	mock.lockOpenAttachment.Lock()
	mock.calls.OpenAttachment = append(mock.calls.OpenAttachment, callInfo)
	mock.lockOpenAttachment.Unlock()
	return mock.OpenAttachmentFunc(ctx, id, kind)
}

func (mock *trackerServiceMock) OpenAttachmentCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Kind tracker.AttachmentKind
} {
	mock.lockOpenAttachment.RLock()
	calls := mock.calls.OpenAttachment
	mock.lockOpenAttachment.RUnlock()
	return calls
}

func (mock *trackerServiceMock) RemoveRecipient(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) error {
	if mock.RemoveRecipientFunc == nil {
		panic("trackerServiceMock.RemoveRecipientFunc: method is nil but trackerService.RemoveRecipient was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          uuid.UUID
		RecipientID uuid.UUID
	}{Ctx: ctx, ID: id, RecipientID: recipientID}
	mock.lockRemoveRecipient.Lock()
	mock.calls.RemoveRecipient = append(mock.calls.RemoveRecipient, callInfo)
	mock.lockRemoveRecipient.Unlock()
	return mock.RemoveRecipientFunc(ctx, id, recipientID)
}

func (mock *trackerServiceMock) RemoveRecipientCalls() []struct {
	Ctx         context.Context
	ID          uuid.UUID
	RecipientID uuid.UUID
} {
	mock.lockRemoveRecipient.RLock()
	calls := mock.calls.RemoveRecipient
	mock.lockRemoveRecipient.RUnlock()
	return calls
}

func (mock *trackerServiceMock) ToggleArchive(ctx context.Context, id uuid.UUID) (*domain.Tracker, error) {
	if mock.ToggleArchiveFunc == nil {
		panic("trackerServiceMock.ToggleArchiveFunc: method is nil but trackerService.ToggleArchive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockToggleArchive.Lock()
	mock.calls.ToggleArchive = append(mock.calls.ToggleArchive, callInfo)
	mock.lockToggleArchive.Unlock()
	return mock.ToggleArchiveFunc(ctx, id)
}

func (mock *trackerServiceMock) ToggleArchiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockToggleArchive.RLock()
	calls := mock.calls.ToggleArchive
	mock.lockToggleArchive.RUnlock()
	return calls
}

func (mock *trackerServiceMock) Update(ctx context.Context, id uuid.UUID, input tracker.UpdateInput) (*domain.Tracker, error) {
	if mock.UpdateFunc == nil {
		panic("trackerServiceMock.UpdateFunc: method is nil but trackerService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input tracker.UpdateInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, input)
}

func (mock *trackerServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input tracker.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *trackerServiceMock) UpdateLCE(ctx context.Context, id uuid.UUID, u domain.LCEUpdate) (*domain.Tracker, error) {
	if mock.UpdateLCEFunc == nil {
		panic("trackerServiceMock.UpdateLCEFunc: method is nil but trackerService.UpdateLCE was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		U   domain.LCEUpdate
	}{Ctx: ctx, ID: id, U: u}
	mock.lockUpdateLCE.Lock()
	mock.calls.UpdateLCE = append(mock.calls.UpdateLCE, callInfo)
	mock.lockUpdateLCE.Unlock()
	return mock.UpdateLCEFunc(ctx, id, u)
}

func (mock *trackerServiceMock) UpdateLCECalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	U   domain.LCEUpdate
} {
	mock.lockUpdateLCE.RLock()
	calls := mock.calls.UpdateLCE
	mock.lockUpdateLCE.RUnlock()
	return calls
}
