package mocks

import (
	"context"
	"errors"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// MockProfileUsecase is a mock implementation of IProfileUseCase.
type MockProfileUsecase struct {
	ShouldReturnLoading bool
	MockProfile         entity.UserProfile
	LastIdentity        entity.Identity
}

var _ usecasecontract.IProfileUseCase = (*MockProfileUsecase)(nil)

func NewMockProfileUsecase() *MockProfileUsecase {
	return &MockProfileUsecase{
		MockProfile: entity.UserProfile{
			ID:        "42",
			Username:  "@alice",
			FirstName: "Alice",
			LastName:  "Liddell",
			Points:    10,
			Role:      entity.RoleParticipant,
			Streak:    1,
		},
	}
}

func (m *MockProfileUsecase) Bootstrap(ctx context.Context, identity entity.Identity) usecasecontract.BootstrapResult {
	m.LastIdentity = identity
	if m.ShouldReturnLoading {
		return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapLoading}
	}
	return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapReady, Profile: &m.MockProfile}
}

// MockRosterUsecase is a mock implementation of IRosterUseCase. On acquire
// it synchronously delivers MockRoster, or MockError when ShouldFail is set.
// StaleOnFail delivers MockRoster before MockError, the way a cached
// fallback arrives alongside a subscription failure.
type MockRosterUsecase struct {
	ShouldFail   bool
	StaleOnFail  bool
	MockRoster   []entity.UserProfile
	MockError    error
	AcquireCalls int
	ReleaseCalls int
}

var _ usecasecontract.IRosterUseCase = (*MockRosterUsecase)(nil)

func NewMockRosterUsecase() *MockRosterUsecase {
	return &MockRosterUsecase{
		MockRoster: []entity.UserProfile{
			{ID: "1", Username: "@alice", FirstName: "Alice", LastName: "Liddell", Points: 30, Role: entity.RoleParticipant},
			{ID: "2", Username: "@bob", FirstName: "Bob", LastName: "Barker", Points: 20, Role: entity.RoleOrganizer},
		},
		MockError: errors.New("roster subscription failed"),
	}
}

func (m *MockRosterUsecase) Acquire(observer usecasecontract.RosterObserver) usecasecontract.RosterHandle {
	m.AcquireCalls++
	if m.ShouldFail {
		if m.StaleOnFail && observer.OnRoster != nil {
			observer.OnRoster(m.MockRoster)
		}
		if observer.OnError != nil {
			observer.OnError(m.MockError)
		}
	} else if observer.OnRoster != nil {
		observer.OnRoster(m.MockRoster)
	}
	return usecasecontract.RosterHandle{ID: "mock-handle"}
}

func (m *MockRosterUsecase) Release(handle usecasecontract.RosterHandle) {
	m.ReleaseCalls++
}

func (m *MockRosterUsecase) Snapshot() ([]entity.UserProfile, bool) {
	if m.ShouldFail {
		return nil, false
	}
	return m.MockRoster, true
}

// MockAdminUsecase is a mock implementation of IAdminUseCase.
type MockAdminUsecase struct {
	ShouldFailApply bool
	ShouldFailReset bool
	ApplyErr        error

	LastTargetID string
	LastAction   entity.AdminAction
	ResetCalls   int
}

var _ usecasecontract.IAdminUseCase = (*MockAdminUsecase)(nil)

func NewMockAdminUsecase() *MockAdminUsecase {
	return &MockAdminUsecase{ApplyErr: errors.New("action failed")}
}

func (m *MockAdminUsecase) Apply(ctx context.Context, targetID string, action entity.AdminAction) error {
	m.LastTargetID = targetID
	m.LastAction = action
	if m.ShouldFailApply {
		return m.ApplyErr
	}
	return nil
}

func (m *MockAdminUsecase) ResetAllUsers(ctx context.Context) error {
	m.ResetCalls++
	if m.ShouldFailReset {
		return errors.New("reset failed")
	}
	return nil
}

// MockLikeUsecase is a mock implementation of ILikeUseCase.
type MockLikeUsecase struct {
	ShouldFail bool
	FailWith   error
	LastActor  string
	LastTarget string
}

var _ usecasecontract.ILikeUseCase = (*MockLikeUsecase)(nil)

func NewMockLikeUsecase() *MockLikeUsecase {
	return &MockLikeUsecase{FailWith: errors.New("like failed")}
}

func (m *MockLikeUsecase) AddLike(ctx context.Context, actorID, targetID string) error {
	m.LastActor = actorID
	m.LastTarget = targetID
	if m.ShouldFail {
		return m.FailWith
	}
	return nil
}

// MockPresenceUsecase is a mock implementation of IPresenceUseCase.
type MockPresenceUsecase struct {
	AttachedIDs []string
	DetachedIDs []string
}

var _ usecasecontract.IPresenceUseCase = (*MockPresenceUsecase)(nil)

func NewMockPresenceUsecase() *MockPresenceUsecase {
	return &MockPresenceUsecase{}
}

func (m *MockPresenceUsecase) Attach(ctx context.Context, userID string) {
	m.AttachedIDs = append(m.AttachedIDs, userID)
}

func (m *MockPresenceUsecase) Detach(ctx context.Context, userID string) {
	m.DetachedIDs = append(m.DetachedIDs, userID)
}
