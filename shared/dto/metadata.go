package dto

import (
	"shareit/shared/constant"
	"shareit/shared/model"
	"shareit/shared/timezone"
	"time"
)

// Metadata is the audit trail exposed on responses. Unset timestamps are omitted.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func NewMetadata(m model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  formatAudit(m.CreatedAt),
		ModifiedAt: formatAudit(m.ModifiedAt),
		CreatedBy:  m.CreatedBy,
		ModifiedBy: m.ModifiedBy,
	}
}

func (m *Metadata) FromModel(model model.Metadata) {
	*m = NewMetadata(model)
}

func formatAudit(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
