package notificationhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"job-application-backend/config"
	"job-application-backend/db"
	notificationlogstore "job-application-backend/lib/notification/store"
	"job-application-backend/lib/smtp"
	dbmodels "job-application-backend/models/db"
)

// Provider - отправка уведомления кандидату о смене статуса.
// Единственная попытка, без повторов и очередей. Dispatch никогда
// не возвращает ошибку вызывающему: сбой фиксируется в журнале
// уведомлений и результатом false.
type Provider interface {
	Dispatch(candidate dbmodels.Candidate, history dbmodels.StatusHistory) (delivered bool)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       notificationlogstore.NewInstance(db.DB),
		sender:      smtp.Instance,
		senderEmail: config.Conf.Notification.SenderEmail,
	}
}

type impl struct {
	store       notificationlogstore.Provider
	sender      smtp.Provider
	senderEmail string
}

func (i impl) Dispatch(candidate dbmodels.Candidate, history dbmodels.StatusHistory) (delivered bool) {
	logger := log.WithField("candidate_id", candidate.ID).
		WithField("history_id", history.ID).
		WithField("new_status", history.NewStatus)

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("паника при отправке уведомления: %v", r)
			i.saveLog(candidate, history, false, fmt.Sprintf("panic: %v", r), logger)
			delivered = false
		}
	}()

	message := BuildStatusMessage(candidate, history)
	subject := BuildStatusSubject(history)

	err := i.sender.SendEMail(i.senderEmail, candidate.Email, message, subject)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления кандидату")
		i.saveLog(candidate, history, false, err.Error(), logger)
		return false
	}

	i.saveLog(candidate, history, true, "", logger)
	logger.Info("уведомление о смене статуса отправлено кандидату")
	return true
}

func (i impl) saveLog(candidate dbmodels.Candidate, history dbmodels.StatusHistory, success bool, errMsg string, logger *log.Entry) {
	rec := dbmodels.NotificationLog{
		CandidateID:     candidate.ID,
		StatusHistoryID: history.ID,
		Type:            "status_update",
		Success:         success,
		ErrorMessage:    errMsg,
	}
	if _, err := i.store.Create(rec); err != nil {
		logger.WithError(err).Error("ошибка сохранения журнала уведомлений")
	}
}
