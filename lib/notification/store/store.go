package notificationlogstore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "job-application-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.NotificationLog) (id string, err error)
	ListByCandidate(candidateID string) (list []dbmodels.NotificationLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.NotificationLog) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByCandidate(candidateID string) (list []dbmodels.NotificationLog, err error) {
	list = []dbmodels.NotificationLog{}
	err = i.db.
		Model(dbmodels.NotificationLog{}).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
