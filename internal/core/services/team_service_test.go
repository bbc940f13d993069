package services_test

import (
	"context"
	"testing"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/core/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TeamServiceTestSuite struct {
	suite.Suite
	mockTeamRepo *MockTeamRepository
	mockUserRepo *MockUserRepository
	service      portssvc.TeamSvcFacade
	teamID       string
	userID       string
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewTeamService(suite.mockTeamRepo, suite.mockUserRepo)

	suite.teamID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TeamServiceTestSuite) membership(role domain.TeamRole) *domain.TeamMember {
	return &domain.TeamMember{
		UserID: suite.userID,
		TeamID: suite.teamID,
		Role:   role,
	}
}

func (suite *TeamServiceTestSuite) TestCreateTeam_CreatorBecomesAdmin() {
	ctx := context.Background()
	req := dto.CreateTeamRequest{Name: "Druk Traders", GstNumber: "29ABCDE1234F1Z5", DefaultCurrencyCode: "INR"}

	suite.mockTeamRepo.On("SaveTeam", ctx, mock.AnythingOfType("domain.Team"), mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	team, err := suite.service.CreateTeam(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(team)
	suite.Equal("Druk Traders", team.Name)
	suite.True(team.IsActive)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestAuthorizeTeamAction_NonMemberHidden() {
	ctx := context.Background()

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeTeamAction(ctx, suite.userID, suite.teamID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TeamServiceTestSuite) TestAuthorizeTeamAction_InsufficientRole() {
	ctx := context.Background()

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(suite.membership(domain.RoleReadOnly), nil).Once()

	err := suite.service.AuthorizeTeamAction(ctx, suite.userID, suite.teamID, domain.RoleMember)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TeamServiceTestSuite) TestAuthorizeTeamAction_AdminCoversMember() {
	ctx := context.Background()

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(suite.membership(domain.RoleAdmin), nil).Once()

	err := suite.service.AuthorizeTeamAction(ctx, suite.userID, suite.teamID, domain.RoleMember)

	suite.Require().NoError(err)
}

func (suite *TeamServiceTestSuite) TestAddUserToTeam_AdminOnly() {
	ctx := context.Background()
	req := dto.AddTeamMemberRequest{UserID: uuid.NewString(), Role: domain.RoleMember}

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(suite.membership(domain.RoleMember), nil).Once()

	err := suite.service.AddUserToTeam(ctx, suite.userID, suite.teamID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "AddTeamMember", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestAddUserToTeam_TargetMustExist() {
	ctx := context.Background()
	req := dto.AddTeamMemberRequest{UserID: uuid.NewString(), Role: domain.RoleMember}

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, req.UserID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AddUserToTeam(ctx, suite.userID, suite.teamID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "AddTeamMember", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestAddUserToTeam_Success() {
	ctx := context.Background()
	targetID := uuid.NewString()
	req := dto.AddTeamMemberRequest{UserID: targetID, Role: domain.RoleReadOnly}

	suite.mockTeamRepo.On("FindTeamMember", ctx, suite.teamID, suite.userID).Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID, IsActive: true}, nil).Once()
	suite.mockTeamRepo.On("AddTeamMember", ctx, mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.UserID == targetID && m.TeamID == suite.teamID && m.Role == domain.RoleReadOnly
	})).Return(nil).Once()

	err := suite.service.AddUserToTeam(ctx, suite.userID, suite.teamID, req)

	suite.Require().NoError(err)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestListUserTeams_Success() {
	ctx := context.Background()
	teams := []domain.Team{{TeamID: suite.teamID, Name: "Druk Traders"}}

	suite.mockTeamRepo.On("ListTeamsByUserID", ctx, suite.userID).Return(teams, nil).Once()

	result, err := suite.service.ListUserTeams(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
