package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "job-application-backend/models/db"
)

type Provider interface {
	ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"ФИО", "Email", "Телефон", "Дата рождения", "Опыт (лет)", "Отдел", "Статус", "Файл резюме", "Дата подачи"}

func (i impl) ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if _, err = writeCandidateData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Кандидаты")
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []dbmodels.Candidate, row int) (int, error) {
	style, err := newCellStyle(f, false, "left")
	if err != nil {
		return row, err
	}
	if err = applyStyle(f, sheet, style, 1, row+1, len(candidateHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "ФИО"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.FullName); err != nil {
			return row, err
		}

		// "Email"
		col++
		if err := writeColumn(f, sheet, col, row, item.Email); err != nil {
			return row, err
		}

		// "Телефон"
		col++
		if err := writeColumn(f, sheet, col, row, item.PhoneNumber); err != nil {
			return row, err
		}

		// "Дата рождения"
		col++
		if !item.BirthDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.BirthDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Опыт (лет)"
		col++
		if err := writeColumn(f, sheet, col, row, item.YearsOfExperience); err != nil {
			return row, err
		}

		// "Отдел"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Department)); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.Display()); err != nil {
			return row, err
		}

		// "Файл резюме"
		col++
		if err := writeColumn(f, sheet, col, row, item.ResumeFileName); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if !item.CreatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
