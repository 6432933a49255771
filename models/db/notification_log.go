package dbmodels

// NotificationLog - результат попытки отправки уведомления,
// создается один раз и не изменяется
type NotificationLog struct {
	BaseModel
	CandidateID     string         `gorm:"type:varchar(36);index"`
	Candidate       *Candidate     `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	StatusHistoryID string         `gorm:"type:varchar(36)"`
	StatusHistory   *StatusHistory `gorm:"foreignKey:StatusHistoryID;constraint:OnDelete:CASCADE"`
	Type            string         `gorm:"type:varchar(50);default:status_update"`
	Success         bool
	ErrorMessage    string
}
