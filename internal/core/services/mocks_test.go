package services_test

import (
	"context"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TeamAuthorizerSvc ---

type MockTeamAuthorizer struct {
	mock.Mock
}

var _ portssvc.TeamAuthorizerSvc = (*MockTeamAuthorizer)(nil)

func (m *MockTeamAuthorizer) AuthorizeTeamAction(ctx context.Context, userID string, teamID string, requiredRole domain.TeamRole) error {
	args := m.Called(ctx, userID, teamID, requiredRole)
	return args.Error(0)
}

// --- Mock PeriodLockSvcFacade ---

type MockPeriodLockService struct {
	mock.Mock
}

var _ portssvc.PeriodLockSvcFacade = (*MockPeriodLockService)(nil)

func (m *MockPeriodLockService) FileGstPeriod(ctx context.Context, teamID string, req dto.FileGstPeriodRequest, actingUserID string) (*domain.GstPeriodLock, error) {
	args := m.Called(ctx, teamID, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstPeriodLock), args.Error(1)
}

func (m *MockPeriodLockService) ListPeriodLocks(ctx context.Context, teamID string, requestingUserID string) ([]domain.GstPeriodLock, error) {
	args := m.Called(ctx, teamID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GstPeriodLock), args.Error(1)
}

func (m *MockPeriodLockService) AssertDateMutable(ctx context.Context, teamID string, date time.Time) error {
	args := m.Called(ctx, teamID, date)
	return args.Error(0)
}

// --- Mock DocumentRepositoryFacade ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByTeam(ctx context.Context, teamID string, filter portsrepo.DocumentListFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, teamID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Document), token, args.Error(2)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document, lines []domain.LineItem) error {
	args := m.Called(ctx, document, lines)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReplaceDocumentLines(ctx context.Context, document domain.Document, lines []domain.LineItem) error {
	args := m.Called(ctx, document, lines)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentDetails(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, at time.Time, activity domain.Activity) error {
	args := m.Called(ctx, documentID, status, userID, at, activity)
	return args.Error(0)
}

// --- Mock PaymentRepositoryFacade ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error {
	args := m.Called(ctx, payment, activity)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error {
	args := m.Called(ctx, payment, activity)
	return args.Error(0)
}

// --- Mock AdjustmentRepositoryFacade ---

type MockAdjustmentRepository struct {
	mock.Mock
}

var _ portsrepo.AdjustmentRepositoryFacade = (*MockAdjustmentRepository)(nil)

func (m *MockAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) ListAdjustmentsByDocument(ctx context.Context, documentID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error {
	args := m.Called(ctx, adjustment, activity)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) DeleteAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error {
	args := m.Called(ctx, adjustment, activity)
	return args.Error(0)
}

// --- Mock AdvanceRepositoryFacade ---

type MockAdvanceRepository struct {
	mock.Mock
}

var _ portsrepo.AdvanceRepositoryFacade = (*MockAdvanceRepository)(nil)

func (m *MockAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	args := m.Called(ctx, advanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) ListAdvancesByTeam(ctx context.Context, teamID string, limit int, nextToken *string) ([]domain.Advance, *string, error) {
	args := m.Called(ctx, teamID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Advance), token, args.Error(2)
}

func (m *MockAdvanceRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAdvanceRepository) ListAllocationsByAdvance(ctx context.Context, advanceID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, advanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAdvanceRepository) ListAllocationsByDocument(ctx context.Context, documentID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error {
	args := m.Called(ctx, advance, activity)
	return args.Error(0)
}

func (m *MockAdvanceRepository) SaveAllocations(ctx context.Context, advanceID string, allocations []domain.Allocation, activity domain.Activity) error {
	args := m.Called(ctx, advanceID, allocations, activity)
	return args.Error(0)
}

func (m *MockAdvanceRepository) DeleteAllocation(ctx context.Context, allocation domain.Allocation, activity domain.Activity) error {
	args := m.Called(ctx, allocation, activity)
	return args.Error(0)
}

func (m *MockAdvanceRepository) DeleteAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error {
	args := m.Called(ctx, advance, activity)
	return args.Error(0)
}

// --- Mock PeriodLockRepositoryFacade ---

type MockPeriodLockRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodLockRepositoryFacade = (*MockPeriodLockRepository)(nil)

func (m *MockPeriodLockRepository) ListPeriodLocksByTeam(ctx context.Context, teamID string) ([]domain.GstPeriodLock, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GstPeriodLock), args.Error(1)
}

func (m *MockPeriodLockRepository) IsDateLocked(ctx context.Context, teamID string, date time.Time) (bool, error) {
	args := m.Called(ctx, teamID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodLockRepository) SavePeriodLock(ctx context.Context, lock domain.GstPeriodLock, activity domain.Activity) error {
	args := m.Called(ctx, lock, activity)
	return args.Error(0)
}

// --- Mock TeamRepositoryFacade ---

type MockTeamRepository struct {
	mock.Mock
}

var _ portsrepo.TeamRepositoryFacade = (*MockTeamRepository)(nil)

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.Team, creatorMembership domain.TeamMember) error {
	args := m.Called(ctx, team, creatorMembership)
	return args.Error(0)
}

func (m *MockTeamRepository) AddTeamMember(ctx context.Context, membership domain.TeamMember) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

// --- Mock UserRepositoryFacade ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
