package analytics

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	SystemStatsFunc      func(ctx context.Context) (domain.SystemStats, error)
	RecipientSummaryFunc func(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error)

	calls struct {
		SystemStats      []struct{ Ctx context.Context }
		RecipientSummary []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
		}
	}
	lockSystemStats      sync.RWMutex
	lockRecipientSummary sync.RWMutex
}

func (mock *statsRepoMock) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	if mock.SystemStatsFunc == nil {
		panic("statsRepoMock.SystemStatsFunc: method is nil but statsRepo.SystemStats was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockSystemStats.Lock()
	mock.calls.SystemStats = append(mock.calls.SystemStats, callInfo)
	mock.lockSystemStats.Unlock()
	return mock.SystemStatsFunc(ctx)
}

func (mock *statsRepoMock) SystemStatsCalls() []struct{ Ctx context.Context } {
	mock.lockSystemStats.RLock()
	calls := mock.calls.SystemStats
	mock.lockSystemStats.RUnlock()
	return calls
}

func (mock *statsRepoMock) RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error) {
	if mock.RecipientSummaryFunc == nil {
		panic("statsRepoMock.RecipientSummaryFunc: method is nil but statsRepo.RecipientSummary was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
	}{Ctx: ctx, RecipientID: recipientID}
	mock.lockRecipientSummary.Lock()
	mock.calls.RecipientSummary = append(mock.calls.RecipientSummary, callInfo)
	mock.lockRecipientSummary.Unlock()
	return mock.RecipientSummaryFunc(ctx, recipientID)
}

func (mock *statsRepoMock) RecipientSummaryCalls() []struct {
	Ctx         context.Context
	RecipientID uuid.UUID
} {
	mock.lockRecipientSummary.RLock()
	calls := mock.calls.RecipientSummary
	mock.lockRecipientSummary.RUnlock()
	return calls
}
