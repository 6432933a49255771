package statushistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "job-application-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StatusHistory) (saved dbmodels.StatusHistory, err error)
	List(candidateID string) (list []dbmodels.StatusHistory, err error)
	GetLatest(candidateID string) (rec *dbmodels.StatusHistory, err error)
	Count(candidateID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StatusHistory) (dbmodels.StatusHistory, error) {
	err := i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return dbmodels.StatusHistory{}, err
	}
	return rec, nil
}

// List - записи истории, новые первыми
func (i impl) List(candidateID string) (list []dbmodels.StatusHistory, err error) {
	list = []dbmodels.StatusHistory{}
	err = i.db.
		Model(dbmodels.StatusHistory{}).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) GetLatest(candidateID string) (*dbmodels.StatusHistory, error) {
	rec := dbmodels.StatusHistory{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Count(candidateID string) (count int64, err error) {
	var rowCount int64
	err = i.db.
		Model(dbmodels.StatusHistory{}).
		Where("candidate_id = ?", candidateID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}
