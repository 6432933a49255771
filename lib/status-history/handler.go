package statushistoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"job-application-backend/db"
	candidatestore "job-application-backend/lib/candidate/store"
	notificationhandler "job-application-backend/lib/notification"
	statushistorystore "job-application-backend/lib/status-history/store"
	"job-application-backend/models"
	candidateapimodels "job-application-backend/models/api/candidate"
	dbmodels "job-application-backend/models/db"
)

// Provider - смена статуса заявки кандидата.
// Направленный граф переходов не задан: допустим любой переход,
// кроме перехода в текущий статус, дисциплина оставлена оператору.
type Provider interface {
	ChangeStatus(candidateID string, req candidateapimodels.StatusUpdateRequest) (candidateapimodels.TransitionView, error)
	List(candidateID string) (candidateapimodels.HistoryListView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		tx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		candidateStore: func(tx *gorm.DB) candidatestore.Provider {
			return candidatestore.NewInstance(tx)
		},
		historyStore: func(tx *gorm.DB) statushistorystore.Provider {
			return statushistorystore.NewInstance(tx)
		},
		candidateReadStore: candidatestore.NewInstance(db.DB),
		historyReadStore:   statushistorystore.NewInstance(db.DB),
		notify: func(candidate dbmodels.Candidate, history dbmodels.StatusHistory) bool {
			return notificationhandler.Instance.Dispatch(candidate, history)
		},
	}
}

type impl struct {
	tx                 func(fn func(tx *gorm.DB) error) error
	candidateStore     func(tx *gorm.DB) candidatestore.Provider
	historyStore       func(tx *gorm.DB) statushistorystore.Provider
	candidateReadStore candidatestore.Provider
	historyReadStore   statushistorystore.Provider
	notify             func(candidate dbmodels.Candidate, history dbmodels.StatusHistory) bool
}

// ChangeStatus - атомарно меняет статус кандидата и дописывает запись
// истории под блокировкой строки кандидата. Уведомление отправляется
// после фиксации транзакции, его сбой не отменяет переход.
func (i impl) ChangeStatus(candidateID string, req candidateapimodels.StatusUpdateRequest) (candidateapimodels.TransitionView, error) {
	view := candidateapimodels.TransitionView{}
	if vErr := req.Validate(); vErr != nil {
		return view, vErr
	}
	newStatus := models.ApplicationStatus(req.Status)
	actor := req.GetActor()
	logger := log.WithField("candidate_id", candidateID).
		WithField("new_status", newStatus).
		WithField("changed_by", actor)

	var updated dbmodels.Candidate
	var historyRec dbmodels.StatusHistory
	err := i.tx(func(tx *gorm.DB) error {
		candidateStore := i.candidateStore(tx)
		historyStore := i.historyStore(tx)

		rec, err := candidateStore.GetByIDForUpdate(candidateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения кандидата")
		}
		if rec == nil {
			return models.ErrNotFound
		}
		if rec.Status == newStatus {
			return models.NewValidationError("status", "кандидат уже находится в этом статусе")
		}
		previousStatus := rec.Status
		err = candidateStore.Update(rec.ID, map[string]interface{}{
			"status": newStatus,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка обновления статуса кандидата")
		}
		historyRec, err = historyStore.Create(dbmodels.StatusHistory{
			CandidateID:    rec.ID,
			PreviousStatus: &previousStatus,
			NewStatus:      newStatus,
			Comments:       req.Comments,
			ChangedBy:      actor,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения записи истории статусов")
		}
		updated = *rec
		updated.Status = newStatus
		return nil
	})
	if err != nil {
		return view, err
	}

	i.notify(updated, historyRec)

	logger.WithField("previous_status", historyRec.PreviousStatus).
		Info("статус заявки кандидата изменен")

	view = candidateapimodels.TransitionView{
		CandidateID:    updated.ID,
		PreviousStatus: string(*historyRec.PreviousStatus),
		NewStatus:      string(historyRec.NewStatus),
		UpdatedAt:      historyRec.CreatedAt,
	}
	return view, nil
}

func (i impl) List(candidateID string) (candidateapimodels.HistoryListView, error) {
	view := candidateapimodels.HistoryListView{}
	rec, err := i.candidateReadStore.GetByID(candidateID)
	if err != nil {
		return view, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return view, models.ErrNotFound
	}
	list, err := i.historyReadStore.List(candidateID)
	if err != nil {
		return view, errors.Wrap(err, "ошибка получения истории статусов")
	}
	view = candidateapimodels.HistoryListView{
		CandidateID:   rec.ID,
		CandidateName: rec.FullName,
		CurrentStatus: string(rec.Status),
		StatusHistory: make([]candidateapimodels.HistoryView, 0, len(list)),
	}
	for _, item := range list {
		view.StatusHistory = append(view.StatusHistory, candidateapimodels.ConvertHistory(item))
	}
	return view, nil
}
