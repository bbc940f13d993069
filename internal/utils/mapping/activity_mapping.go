package mapping

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/models"
)

// ToModelActivity converts a domain Activity to a model Activity
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID: d.ActivityID,
		TeamID:     d.TeamID,
		ActorID:    d.ActorID,
		Action:     string(d.Action),
		EntityKind: d.EntityKind,
		EntityID:   d.EntityID,
		Detail:     d.Detail,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainActivity converts a model Activity to a domain Activity
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID: m.ActivityID,
		TeamID:     m.TeamID,
		ActorID:    m.ActorID,
		Action:     domain.ActivityAction(m.Action),
		EntityKind: m.EntityKind,
		EntityID:   m.EntityID,
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainActivitySlice converts model Activities to domain Activities
func ToDomainActivitySlice(ms []models.Activity) []domain.Activity {
	ds := make([]domain.Activity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}
