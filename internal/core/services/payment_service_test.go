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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockDocRepo     *MockDocumentRepository
	mockAuthorizer  *MockTeamAuthorizer
	mockLockSvc     *MockPeriodLockService
	service         portssvc.PaymentSvcFacade
	teamID          string
	userID          string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockAuthorizer = new(MockTeamAuthorizer)
	suite.mockLockSvc = new(MockPeriodLockService)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockDocRepo, suite.mockAuthorizer, suite.mockLockSvc)

	suite.teamID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) issuedInvoice(due string) *domain.Document {
	amountDue := decimal.RequireFromString(due)
	return &domain.Document{
		DocumentID:   uuid.NewString(),
		TeamID:       suite.teamID,
		Kind:         domain.KindInvoice,
		DocumentDate: time.Now().UTC(),
		CurrencyCode: "INR",
		TotalAmount:  amountDue,
		AmountDue:    amountDue,
		Status:       domain.StatusIssued,
	}
}

func (suite *PaymentServiceTestSuite) paymentRequest(doc *domain.Document, amount int64) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		DocumentID:  doc.DocumentID,
		Amount:      decimal.NewFromInt(amount),
		PaymentDate: time.Now().UTC(),
		Method:      domain.MethodBankTransfer,
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	req := suite.paymentRequest(doc, 400)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(doc.DocumentID, payment.DocumentID)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(400)))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	req := suite.paymentRequest(doc, 0)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindDocumentByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_DraftDocument() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	doc.Status = domain.StatusDraft
	req := suite.paymentRequest(doc, 400)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_QuotationCarriesNoBalance() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	doc.Kind = domain.KindQuotation
	req := suite.paymentRequest(doc, 400)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_LockedPeriod() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	req := suite.paymentRequest(doc, 400)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	_, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedPeriod)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CrossTeamDocument() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	doc.TeamID = uuid.NewString()
	req := suite.paymentRequest(doc, 400)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_Success() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	payment := &domain.Payment{
		PaymentID:  uuid.NewString(),
		TeamID:     suite.teamID,
		DocumentID: doc.DocumentID,
		Amount:     decimal.NewFromInt(400),
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, *payment, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.teamID, payment.PaymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_CrossTeamHidden() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:  uuid.NewString(),
		TeamID:     uuid.NewString(),
		DocumentID: uuid.NewString(),
		Amount:     decimal.NewFromInt(400),
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	err := suite.service.DeletePayment(ctx, suite.teamID, payment.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_LockedPeriod() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	payment := &domain.Payment{
		PaymentID:  uuid.NewString(),
		TeamID:     suite.teamID,
		DocumentID: doc.DocumentID,
		Amount:     decimal.NewFromInt(400),
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	err := suite.service.DeletePayment(ctx, suite.teamID, payment.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedPeriod)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByDocument_Success() {
	ctx := context.Background()
	doc := suite.issuedInvoice("1000")
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), TeamID: suite.teamID, DocumentID: doc.DocumentID, Amount: decimal.NewFromInt(400)},
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByDocument", ctx, doc.DocumentID).Return(payments, nil).Once()

	result, err := suite.service.ListPaymentsByDocument(ctx, suite.teamID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
