package dbmodels

import (
	"job-application-backend/models"
)

// StatusHistory - журнал смены статусов, записи только добавляются
type StatusHistory struct {
	BaseModel
	CandidateID    string     `gorm:"type:varchar(36);index:idx_candidate_changed"`
	Candidate      *Candidate `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	PreviousStatus *models.ApplicationStatus `gorm:"type:varchar(30)"` // null только у первой записи
	NewStatus      models.ApplicationStatus  `gorm:"type:varchar(30)"`
	Comments       string
	ChangedBy      string `gorm:"type:varchar(255)"`
}
