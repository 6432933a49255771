package candidate

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"job-application-backend/config"
	"job-application-backend/db"
	candidatestore "job-application-backend/lib/candidate/store"
	pdfexport "job-application-backend/lib/export/pdf"
	filestorage "job-application-backend/lib/file-storage"
	notificationhandler "job-application-backend/lib/notification"
	resumevalidator "job-application-backend/lib/resume-validator"
	statushistorystore "job-application-backend/lib/status-history/store"
	"job-application-backend/models"
	candidateapimodels "job-application-backend/models/api/candidate"
	dbmodels "job-application-backend/models/db"
)

type Provider interface {
	Register(ctx context.Context, data candidateapimodels.RegistrationData, file io.ReadSeeker, fileInfo resumevalidator.FileInfo) (candidateapimodels.RegistrationView, error)
	GetStatus(candidateID string) (candidateapimodels.StatusView, error)
	GetStatusByEmail(email string) (candidateapimodels.StatusView, error)
	List(filter candidateapimodels.ListFilter) (list []candidateapimodels.ListItemView, rowCount int64, err error)
	ListAll(filter candidateapimodels.ListFilter) (list []dbmodels.Candidate, err error)
	GetDetail(candidateID string) (candidateapimodels.DetailView, error)
	GetResumeFile(ctx context.Context, candidateID string) (body []byte, fileName string, contentType string, err error)
	GenerateProfilePDF(candidateID string) (pdfFile []byte, err error)
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
		fileStore:          filestorage.Instance,
		notify: func(candidate dbmodels.Candidate, history dbmodels.StatusHistory) bool {
			return notificationhandler.Instance.Dispatch(candidate, history)
		},
		notifyOnRegistration: *config.Conf.Notification.SendOnRegistration,
	}
}

type impl struct {
	tx                   func(fn func(tx *gorm.DB) error) error
	candidateStore       func(tx *gorm.DB) candidatestore.Provider
	historyStore         func(tx *gorm.DB) statushistorystore.Provider
	candidateReadStore   candidatestore.Provider
	historyReadStore     statushistorystore.Provider
	fileStore            filestorage.Provider
	notify               func(candidate dbmodels.Candidate, history dbmodels.StatusHistory) bool
	notifyOnRegistration bool
}

// Register - регистрация кандидата: проверки полей анкеты,
// уникальности email/телефона и файла резюме, затем создание записи
// кандидата вместе с первой записью истории в одной транзакции.
// Регистрация либо проходит целиком, либо не пишет ничего.
func (i impl) Register(ctx context.Context, data candidateapimodels.RegistrationData, file io.ReadSeeker, fileInfo resumevalidator.FileInfo) (candidateapimodels.RegistrationView, error) {
	view := candidateapimodels.RegistrationView{}
	vErr := data.Validate()
	if vErr == nil {
		vErr = &models.ValidationError{}
	}

	if _, ok := vErr.Fields["email"]; !ok {
		found, err := i.candidateReadStore.IsExistEmail(data.Email)
		if err != nil {
			return view, errors.Wrap(err, "ошибка проверки уникальности email")
		}
		if found {
			vErr.Add("email", "кандидат с таким email уже зарегистрирован")
		}
	}
	if _, ok := vErr.Fields["phone_number"]; !ok {
		found, err := i.candidateReadStore.IsExistPhone(data.PhoneNumber)
		if err != nil {
			return view, errors.Wrap(err, "ошибка проверки уникальности номера телефона")
		}
		if found {
			vErr.Add("phone_number", "кандидат с таким номером телефона уже зарегистрирован")
		}
	}

	// анкета принимает только pdf и docx, валидатор файлов шире (doc)
	ext := getExtension(fileInfo.Name)
	if ext != "pdf" && ext != "docx" {
		vErr.Add("resume", "допускаются только файлы PDF и DOCX")
	}
	if vErr.HasErrors() {
		log.WithField("email", data.Email).WithField("errors", vErr.Error()).
			Warn("регистрация кандидата отклонена валидацией")
		return view, vErr
	}

	if sErr := resumevalidator.CheckContentSafety(fileInfo); sErr != nil {
		return view, sErr
	}
	detectedMime, fErr := resumevalidator.CheckResumeFile(file, fileInfo)
	if fErr != nil {
		return view, fErr
	}

	body, err := io.ReadAll(file)
	if err != nil {
		return view, errors.Wrap(err, "ошибка чтения файла резюме")
	}

	candidateID := uuid.NewString()
	resumeKey := filestorage.BuildResumeKey(candidateID, ext)
	if err = i.fileStore.SaveResume(ctx, resumeKey, body, detectedMime); err != nil {
		return view, errors.Wrap(err, "ошибка сохранения файла резюме")
	}

	birthDate, _ := data.GetBirthDate()
	rec := dbmodels.Candidate{
		BaseModel:         dbmodels.BaseModel{ID: candidateID},
		FullName:          strings.TrimSpace(data.FullName),
		Email:             strings.ToLower(strings.TrimSpace(data.Email)),
		PhoneNumber:       strings.TrimSpace(data.PhoneNumber),
		BirthDate:         birthDate,
		YearsOfExperience: data.YearsOfExperience,
		Department:        models.Department(data.Department),
		Status:            models.StatusSubmitted,
		ResumeKey:         resumeKey,
		ResumeFileName:    fileInfo.Name,
		ResumeExt:         ext,
	}

	var saved dbmodels.Candidate
	var historyRec dbmodels.StatusHistory
	err = i.tx(func(tx *gorm.DB) error {
		candidateStore := i.candidateStore(tx)
		historyStore := i.historyStore(tx)
		if _, err := candidateStore.Create(rec); err != nil {
			return errors.Wrap(err, "ошибка создания кандидата")
		}
		createdRec, err := candidateStore.GetByID(candidateID)
		if err != nil || createdRec == nil {
			return errors.Wrap(err, "ошибка чтения созданного кандидата")
		}
		saved = *createdRec
		historyRec, err = historyStore.Create(dbmodels.StatusHistory{
			CandidateID: candidateID,
			NewStatus:   models.StatusSubmitted,
			Comments:    models.InitialSubmissionComment,
			ChangedBy:   models.ActorSystem,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка создания первой записи истории")
		}
		return nil
	})
	if err != nil {
		// запись не создана, загруженный файл больше не нужен
		if delErr := i.fileStore.DeleteResume(ctx, resumeKey); delErr != nil {
			log.WithError(delErr).WithField("resume_key", resumeKey).
				Error("ошибка удаления файла резюме после неудачной регистрации")
		}
		return view, err
	}

	if i.notifyOnRegistration {
		i.notify(saved, historyRec)
	}

	log.WithField("candidate_id", saved.ID).
		WithField("full_name", saved.FullName).
		WithField("action", "registration").
		Info("кандидат успешно зарегистрирован")

	return candidateapimodels.RegistrationView{
		CandidateID: saved.ID,
		Status:      saved.Status,
		CreatedAt:   saved.CreatedAt,
	}, nil
}

func (i impl) GetStatus(candidateID string) (candidateapimodels.StatusView, error) {
	rec, err := i.candidateReadStore.GetByID(candidateID)
	if err != nil {
		return candidateapimodels.StatusView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	return i.statusView(rec)
}

func (i impl) GetStatusByEmail(email string) (candidateapimodels.StatusView, error) {
	rec, err := i.candidateReadStore.GetByEmail(email)
	if err != nil {
		return candidateapimodels.StatusView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	return i.statusView(rec)
}

func (i impl) statusView(rec *dbmodels.Candidate) (candidateapimodels.StatusView, error) {
	if rec == nil {
		return candidateapimodels.StatusView{}, models.ErrNotFound
	}
	latest, err := i.historyReadStore.GetLatest(rec.ID)
	if err != nil {
		return candidateapimodels.StatusView{}, errors.Wrap(err, "ошибка получения истории статусов")
	}
	return candidateapimodels.ConvertStatus(*rec, latest), nil
}

func (i impl) List(filter candidateapimodels.ListFilter) ([]candidateapimodels.ListItemView, int64, error) {
	rowCount, err := i.candidateReadStore.ListCount(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества кандидатов")
	}
	list, err := i.candidateReadStore.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	result := make([]candidateapimodels.ListItemView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.ConvertListItem(rec))
	}
	return result, rowCount, nil
}

// ListAll - записи кандидатов для выгрузки, без пагинации
func (i impl) ListAll(filter candidateapimodels.ListFilter) ([]dbmodels.Candidate, error) {
	return i.candidateReadStore.ListAll(filter)
}

func (i impl) GetDetail(candidateID string) (candidateapimodels.DetailView, error) {
	rec, err := i.candidateReadStore.GetByID(candidateID)
	if err != nil {
		return candidateapimodels.DetailView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.DetailView{}, models.ErrNotFound
	}
	history, err := i.historyReadStore.List(candidateID)
	if err != nil {
		return candidateapimodels.DetailView{}, errors.Wrap(err, "ошибка получения истории статусов")
	}
	return candidateapimodels.ConvertDetail(*rec, history), nil
}

// GetResumeFile - содержимое резюме для скачивания администратором
func (i impl) GetResumeFile(ctx context.Context, candidateID string) ([]byte, string, string, error) {
	rec, err := i.candidateReadStore.GetByID(candidateID)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "", "", models.ErrNotFound
	}
	if !rec.HasResume() {
		return nil, "", "", errors.Wrap(models.ErrNotFound, "у кандидата нет резюме")
	}
	exists, err := i.fileStore.ResumeExists(ctx, rec.ResumeKey)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка проверки файла резюме в хранилище")
	}
	if !exists {
		log.WithField("candidate_id", rec.ID).
			WithField("resume_key", rec.ResumeKey).
			Error("файл резюме отсутствует в хранилище")
		return nil, "", "", errors.Wrap(models.ErrNotFound, "файл резюме отсутствует в хранилище")
	}
	body, err := i.fileStore.GetResume(ctx, rec.ResumeKey)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка чтения файла резюме")
	}
	fileName := rec.FullName + "_resume_" + rec.ResumeFileName
	contentType := resumevalidator.MimeDocx
	if rec.ResumeExt == "pdf" {
		contentType = resumevalidator.MimePdf
	}
	log.WithField("candidate_id", rec.ID).
		WithField("action", "resume_download").
		Info("резюме кандидата выгружено администратором")
	return body, fileName, contentType, nil
}

func (i impl) GenerateProfilePDF(candidateID string) ([]byte, error) {
	rec, err := i.candidateReadStore.GetByID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	history, err := i.historyReadStore.List(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории статусов")
	}
	return pdfexport.GenerateCandidateProfile(*rec, history)
}

func getExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return strings.ToLower(fileName[idx+1:])
}
