package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/core/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockAdjustmentRepo *MockAdjustmentRepository
	mockDocRepo        *MockDocumentRepository
	mockAuthorizer     *MockTeamAuthorizer
	mockLockSvc        *MockPeriodLockService
	service            portssvc.AdjustmentSvcFacade
	teamID             string
	userID             string
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockAuthorizer = new(MockTeamAuthorizer)
	suite.mockLockSvc = new(MockPeriodLockService)
	suite.service = services.NewAdjustmentService(suite.mockAdjustmentRepo, suite.mockDocRepo, suite.mockAuthorizer, suite.mockLockSvc)

	suite.teamID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AdjustmentServiceTestSuite) issuedInvoice() *domain.Document {
	total := decimal.NewFromInt(1000)
	return &domain.Document{
		DocumentID:   uuid.NewString(),
		TeamID:       suite.teamID,
		Kind:         domain.KindInvoice,
		DocumentDate: time.Now().UTC(),
		TotalAmount:  total,
		AmountDue:    total,
		Status:       domain.StatusIssued,
	}
}

func (suite *AdjustmentServiceTestSuite) adjustmentRequest(doc *domain.Document, adjType domain.AdjustmentType, amount int64) dto.CreateAdjustmentRequest {
	return dto.CreateAdjustmentRequest{
		DocumentID:     doc.DocumentID,
		Type:           adjType,
		Amount:         decimal.NewFromInt(amount),
		Description:    "correction",
		AdjustmentDate: time.Now().UTC(),
	}
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_CreditNoteSignsNegative() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	req := suite.adjustmentRequest(doc, domain.AdjCreditNote, 200)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", ctx, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	adjustment, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(adjustment)
	suite.True(adjustment.SignedAmount.Equal(decimal.NewFromInt(-200)), "credit notes reduce the amount due")
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_DebitNoteSignsPositive() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	req := suite.adjustmentRequest(doc, domain.AdjDebitNote, 150)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", ctx, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	adjustment, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(adjustment.SignedAmount.Equal(decimal.NewFromInt(150)))
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_ZeroAmount() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	req := suite.adjustmentRequest(doc, domain.AdjDiscount, 0)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindDocumentByID", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_DraftDocument() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	doc.Status = domain.StatusDraft
	req := suite.adjustmentRequest(doc, domain.AdjCreditNote, 200)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_CancelledDocument() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	doc.Status = domain.StatusCancelled
	req := suite.adjustmentRequest(doc, domain.AdjCreditNote, 200)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_LockedPeriod() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	req := suite.adjustmentRequest(doc, domain.AdjLateFee, 50)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	_, err := suite.service.CreateAdjustment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedPeriod)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustment_Success() {
	ctx := context.Background()
	doc := suite.issuedInvoice()
	adjustment := &domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		TeamID:       suite.teamID,
		DocumentID:   doc.DocumentID,
		Type:         domain.AdjCreditNote,
		SignedAmount: decimal.NewFromInt(-200),
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockAdjustmentRepo.On("DeleteAdjustment", ctx, *adjustment, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	err := suite.service.DeleteAdjustment(ctx, suite.teamID, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustment_CrossTeamHidden() {
	ctx := context.Background()
	adjustment := &domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		TeamID:       uuid.NewString(),
		DocumentID:   uuid.NewString(),
		Type:         domain.AdjCreditNote,
		SignedAmount: decimal.NewFromInt(-200),
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", ctx, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	err := suite.service.DeleteAdjustment(ctx, suite.teamID, adjustment.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "DeleteAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
