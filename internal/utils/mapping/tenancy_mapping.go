package mapping

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/models"
)

// ToModelTeam converts a domain Team to a model Team
func ToModelTeam(d domain.Team) models.Team {
	return models.Team{
		TeamID:              d.TeamID,
		Name:                d.Name,
		GstNumber:           d.GstNumber,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTeam converts a model Team to a domain Team
func ToDomainTeam(m models.Team) domain.Team {
	return domain.Team{
		TeamID:              m.TeamID,
		Name:                m.Name,
		GstNumber:           m.GstNumber,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTeamSlice converts model Teams to domain Teams
func ToDomainTeamSlice(ms []models.Team) []domain.Team {
	ds := make([]domain.Team, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTeam(m)
	}
	return ds
}

// ToModelTeamMember converts a domain TeamMember to a model TeamMember
func ToModelTeamMember(d domain.TeamMember) models.TeamMember {
	return models.TeamMember{
		TeamID:      d.TeamID,
		UserID:      d.UserID,
		Role:        string(d.Role),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTeamMember converts a model TeamMember to a domain TeamMember
func ToDomainTeamMember(m models.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		TeamID:      m.TeamID,
		UserID:      m.UserID,
		Role:        domain.TeamRole(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
