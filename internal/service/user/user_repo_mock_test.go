package user

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CreateFunc         func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	ListFunc           func(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		Update []struct {
			Ctx context.Context
			U   *domain.User
		}
		UpdatePassword []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Hash string
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.UserFilter
		}
	}
	lockGetByID        sync.RWMutex
	lockCreate         sync.RWMutex
	lockUpdate         sync.RWMutex
	lockUpdatePassword sync.RWMutex
	lockDelete         sync.RWMutex
	lockList           sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
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

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, u)
}

func (mock *userRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if mock.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Hash string
	}{Ctx: ctx, ID: id, Hash: hash}
	mock.lockUpdatePassword.Lock()
	mock.calls.UpdatePassword = append(mock.calls.UpdatePassword, callInfo)
	mock.lockUpdatePassword.Unlock()
	return mock.UpdatePasswordFunc(ctx, id, hash)
}

func (mock *userRepoMock) UpdatePasswordCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Hash string
} {
	mock.lockUpdatePassword.RLock()
	calls := mock.calls.UpdatePassword
	mock.lockUpdatePassword.RUnlock()
	return calls
}

func (mock *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("userRepoMock.DeleteFunc: method is nil but userRepo.Delete was just called")
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

func (mock *userRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *userRepoMock) List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.UserFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *userRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.UserFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
