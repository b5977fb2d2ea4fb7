package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ activityService = &activityServiceMock{}

type activityServiceMock struct {
	CleanupFunc func(ctx context.Context, days int, dryRun bool) (int64, error)
	GetFunc     func(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error)
	ListFunc    func(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error)
	SummaryFunc func(ctx context.Context, days int) (domain.ActivitySummary, error)

	calls struct {
		Cleanup []struct {
			Ctx    context.Context
			Days   int
			DryRun bool
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.ActivityFilter
		}
		Summary []struct {
			Ctx  context.Context
			Days int
		}
	}
	lockCleanup sync.RWMutex
	lockGet     sync.RWMutex
	lockList    sync.RWMutex
	lockSummary sync.RWMutex
}

func (mock *activityServiceMock) Cleanup(ctx context.Context, days int, dryRun bool) (int64, error) {
	if mock.CleanupFunc == nil {
		panic("activityServiceMock.CleanupFunc: method is nil but activityService.Cleanup was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Days   int
		DryRun bool
	}{Ctx: ctx, Days: days, DryRun: dryRun}
	mock.lockCleanup.Lock()
	mock.calls.Cleanup = append(mock.calls.Cleanup, callInfo)
	mock.lockCleanup.Unlock()
	return mock.CleanupFunc(ctx, days, dryRun)
}

func (mock *activityServiceMock) CleanupCalls() []struct {
	Ctx    context.Context
	Days   int
	DryRun bool
} {
	mock.lockCleanup.RLock()
	calls := mock.calls.Cleanup
	mock.lockCleanup.RUnlock()
	return calls
}

func (mock *activityServiceMock) Get(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error) {
	if mock.GetFunc == nil {
		panic("activityServiceMock.GetFunc: method is nil but activityService.Get was just called")
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

func (mock *activityServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *activityServiceMock) List(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error) {
	if mock.ListFunc == nil {
		panic("activityServiceMock.ListFunc: method is nil but activityService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ActivityFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *activityServiceMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ActivityFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *activityServiceMock) Summary(ctx context.Context, days int) (domain.ActivitySummary, error) {
	if mock.SummaryFunc == nil {
		panic("activityServiceMock.SummaryFunc: method is nil but activityService.Summary was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Days int
	}{Ctx: ctx, Days: days}
	mock.lockSummary.Lock()
	mock.calls.Summary = append(mock.calls.Summary, callInfo)
	mock.lockSummary.Unlock()
	return mock.SummaryFunc(ctx, days)
}

func (mock *activityServiceMock) SummaryCalls() []struct {
	Ctx  context.Context
	Days int
} {
	mock.lockSummary.RLock()
	calls := mock.calls.Summary
	mock.lockSummary.RUnlock()
	return calls
}
