package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ analyticsService = &analyticsServiceMock{}

type analyticsServiceMock struct {
	RecipientSummaryFunc func(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error)
	SystemStatsFunc      func(ctx context.Context) (domain.SystemStats, error)

	calls struct {
		RecipientSummary []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
		}
		SystemStats []struct{ Ctx context.Context }
	}
	lockRecipientSummary sync.RWMutex
	lockSystemStats      sync.RWMutex
}

func (mock *analyticsServiceMock) RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error) {
	if mock.RecipientSummaryFunc == nil {
		panic("analyticsServiceMock.RecipientSummaryFunc: method is nil but analyticsService.RecipientSummary was just called")
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

func (mock *analyticsServiceMock) RecipientSummaryCalls() []struct {
	Ctx         context.Context
	RecipientID uuid.UUID
} {
	mock.lockRecipientSummary.RLock()
	calls := mock.calls.RecipientSummary
	mock.lockRecipientSummary.RUnlock()
	return calls
}

func (mock *analyticsServiceMock) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	if mock.SystemStatsFunc == nil {
		panic("analyticsServiceMock.SystemStatsFunc: method is nil but analyticsService.SystemStats was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockSystemStats.Lock()
	mock.calls.SystemStats = append(mock.calls.SystemStats, callInfo)
	mock.lockSystemStats.Unlock()
	return mock.SystemStatsFunc(ctx)
}

func (mock *analyticsServiceMock) SystemStatsCalls() []struct{ Ctx context.Context } {
	mock.lockSystemStats.RLock()
	calls := mock.calls.SystemStats
	mock.lockSystemStats.RUnlock()
	return calls
}
