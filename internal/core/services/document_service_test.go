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

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo    *MockDocumentRepository
	mockAuthorizer *MockTeamAuthorizer
	mockLockSvc    *MockPeriodLockService
	service        portssvc.DocumentSvcFacade
	teamID         string
	userID         string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockAuthorizer = new(MockTeamAuthorizer)
	suite.mockLockSvc = new(MockPeriodLockService)
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockAuthorizer, suite.mockLockSvc)

	suite.teamID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *DocumentServiceTestSuite) createRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		Kind:           domain.KindInvoice,
		CounterpartyID: uuid.NewString(),
		DocumentNumber: "INV-2025-001",
		DocumentDate:   time.Now().UTC(),
		CurrencyCode:   "INR",
		LineItems: []dto.CreateLineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(150)},
			{Description: "Hosting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("249.50")},
		},
	}
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_TotalsFromLines() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, req.DocumentDate).Return(nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document"), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, suite.teamID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(domain.StatusDraft, doc.Status)
	suite.Equal(domain.PaymentUnpaid, doc.PaymentStatus)
	suite.True(doc.TotalAmount.Equal(decimal.RequireFromString("1999.00")), "total is the sum of quantity * unitPrice")
	suite.True(doc.AmountDue.Equal(doc.TotalAmount))
	suite.True(doc.AmountPaid.IsZero())
	suite.Len(doc.LineItems, 2)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NonPositiveQuantity() {
	ctx := context.Background()
	req := suite.createRequest()
	req.LineItems[0].Quantity = decimal.Zero

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, req.DocumentDate).Return(nil).Once()

	_, err := suite.service.CreateDocument(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NegativeUnitPrice() {
	ctx := context.Background()
	req := suite.createRequest()
	req.LineItems[1].UnitPrice = decimal.NewFromInt(-5)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, req.DocumentDate).Return(nil).Once()

	_, err := suite.service.CreateDocument(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_LockedDate() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, req.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	_, err := suite.service.CreateDocument(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedPeriod)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_AuthorizationFailure() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDocument(ctx, suite.teamID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLockSvc.AssertNotCalled(suite.T(), "AssertDateMutable", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) draftInvoice(total string) *domain.Document {
	amount := decimal.RequireFromString(total)
	return &domain.Document{
		DocumentID:     uuid.NewString(),
		TeamID:         suite.teamID,
		Kind:           domain.KindInvoice,
		CounterpartyID: uuid.NewString(),
		DocumentNumber: "INV-2025-002",
		DocumentDate:   time.Now().UTC(),
		CurrencyCode:   "INR",
		TotalAmount:    amount,
		AmountPaid:     decimal.Zero,
		AmountDue:      amount,
		Status:         domain.StatusDraft,
		PaymentStatus:  domain.PaymentUnpaid,
	}
}

func (suite *DocumentServiceTestSuite) TestTransitionDocument_Issue() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockDocRepo.On("UpdateDocumentStatus", ctx, doc.DocumentID, domain.StatusIssued, suite.userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	result, err := suite.service.TransitionDocument(ctx, suite.teamID, doc.DocumentID, domain.StatusIssued, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusIssued, result.Status)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestTransitionDocument_IssueZeroTotal() {
	ctx := context.Background()
	doc := suite.draftInvoice("0")

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.TransitionDocument(ctx, suite.teamID, doc.DocumentID, domain.StatusIssued, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestTransitionDocument_CancelPaidInvoice() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	doc.Status = domain.StatusIssued
	doc.AmountPaid = decimal.NewFromInt(400)
	doc.AmountDue = decimal.NewFromInt(600)

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.TransitionDocument(ctx, suite.teamID, doc.DocumentID, domain.StatusCancelled, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *DocumentServiceTestSuite) TestTransitionDocument_LockedPeriod() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	_, err := suite.service.TransitionDocument(ctx, suite.teamID, doc.DocumentID, domain.StatusIssued, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedPeriod)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_DraftOnly() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	doc.Status = domain.StatusIssued
	notes := "updated"

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()

	_, err := suite.service.UpdateDocument(ctx, suite.teamID, doc.DocumentID, dto.UpdateDocumentRequest{Notes: &notes}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocumentDetails", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_LockedDraft() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	notes := "updated"

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()

	_, err := suite.service.UpdateDocument(ctx, suite.teamID, doc.DocumentID, dto.UpdateDocumentRequest{Notes: &notes}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockedDocument)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_ReplaceLinesRecomputesTotals() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	req := dto.UpdateDocumentRequest{
		LineItems: []dto.CreateLineItemRequest{
			{Description: "Revised", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(250)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(nil).Once()
	suite.mockDocRepo.On("ReplaceDocumentLines", ctx, mock.AnythingOfType("domain.Document"), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	result, err := suite.service.UpdateDocument(ctx, suite.teamID, doc.DocumentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.TotalAmount.Equal(decimal.NewFromInt(750)))
	suite.True(result.AmountDue.Equal(decimal.NewFromInt(750)))
	suite.Len(result.LineItems, 1)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_CrossTeamHidden() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	doc.TeamID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.GetDocumentByID(ctx, suite.teamID, doc.DocumentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_DerivesLockState() {
	ctx := context.Background()
	doc := suite.draftInvoice("1000")
	lines := []domain.LineItem{
		{LineItemID: uuid.NewString(), DocumentID: doc.DocumentID, Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(1000)},
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLockSvc.On("AssertDateMutable", ctx, suite.teamID, doc.DocumentDate).Return(apperrors.ErrLockedPeriod).Once()
	suite.mockDocRepo.On("FindLineItemsByDocumentID", ctx, doc.DocumentID).Return(lines, nil).Once()

	result, err := suite.service.GetDocumentByID(ctx, suite.teamID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.IsLocked)
	suite.Len(result.LineItems, 1)
}

func (suite *DocumentServiceTestSuite) TestConvertQuotation_Success() {
	ctx := context.Background()
	quotation := suite.draftInvoice("500")
	quotation.Kind = domain.KindQuotation
	quotation.Status = domain.StatusAccepted
	quotation.DocumentNumber = "QUO-2025-009"
	quoteLines := []domain.LineItem{
		{LineItemID: uuid.NewString(), DocumentID: quotation.DocumentID, Description: "Design", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(500)},
	}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, quotation.DocumentID).Return(quotation, nil).Once()
	suite.mockDocRepo.On("FindLineItemsByDocumentID", ctx, quotation.DocumentID).Return(quoteLines, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document"), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	invoice, err := suite.service.ConvertQuotation(ctx, suite.teamID, quotation.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.KindInvoice, invoice.Kind)
	suite.Equal(domain.StatusDraft, invoice.Status)
	suite.Equal("QUO-2025-009-INV", invoice.DocumentNumber)
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(500)))
	suite.NotEqual(quotation.DocumentID, invoice.DocumentID)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestConvertQuotation_RequiresAccepted() {
	ctx := context.Background()
	quotation := suite.draftInvoice("500")
	quotation.Kind = domain.KindQuotation
	quotation.Status = domain.StatusIssued

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, quotation.DocumentID).Return(quotation, nil).Once()

	_, err := suite.service.ConvertQuotation(ctx, suite.teamID, quotation.DocumentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestConvertQuotation_RejectsInvoice() {
	ctx := context.Background()
	doc := suite.draftInvoice("500")

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.ConvertQuotation(ctx, suite.teamID, doc.DocumentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestListDocuments_ClampsLimit() {
	ctx := context.Background()
	params := dto.ListDocumentsParams{Limit: 500}

	suite.mockAuthorizer.On("AuthorizeTeamAction", ctx, suite.userID, suite.teamID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("ListDocumentsByTeam", ctx, suite.teamID, mock.AnythingOfType("repositories.DocumentListFilter"), 100, (*string)(nil)).Return([]domain.Document{}, "", nil).Once()

	_, _, err := suite.service.ListDocuments(ctx, suite.teamID, suite.userID, params)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
