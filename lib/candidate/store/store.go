package candidatestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	candidateapimodels "job-application-backend/models/api/candidate"
	dbmodels "job-application-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.Candidate, err error)
	GetByEmail(email string) (rec *dbmodels.Candidate, err error)
	IsExistEmail(email string) (found bool, err error)
	IsExistPhone(phone string) (found bool, err error)
	List(filter candidateapimodels.ListFilter) (list []dbmodels.Candidate, err error)
	ListAll(filter candidateapimodels.ListFilter) (list []dbmodels.Candidate, err error)
	ListCount(filter candidateapimodels.ListFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("id = ?", id).
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

// GetByIDForUpdate - чтение с блокировкой строки,
// сериализует конкурентные смены статуса по одному кандидату
func (i impl) GetByIDForUpdate(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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

func (i impl) GetByEmail(email string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
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

func (i impl) IsExistEmail(email string) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.Candidate{}).
		Select("count(*) > 0").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) IsExistPhone(phone string) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.Candidate{}).
		Select("count(*) > 0").
		Where("phone_number = ?", strings.TrimSpace(phone)).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) List(filter candidateapimodels.ListFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(dbmodels.Candidate{})
	i.addListFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	tx.Order("created_at desc")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ListAll - список без пагинации, для выгрузок
func (i impl) ListAll(filter candidateapimodels.ListFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(dbmodels.Candidate{})
	i.addListFilter(tx, filter)
	tx.Order("created_at desc")
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter candidateapimodels.ListFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Candidate{})
	i.addListFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) addListFilter(tx *gorm.DB, filter candidateapimodels.ListFilter) {
	if filter.Department != "" {
		tx.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(full_name) like ? or LOWER(email) like ?", searchValue, searchValue)
	}
}
