package resumevalidator

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"job-application-backend/models"
)

// MaxFileSize - предельный размер файла резюме
const MaxFileSize = 5 * 1024 * 1024

// minFileSize - файлы меньше 100 байт не похожи на резюме
const minFileSize = 100

const (
	MimePdf  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDoc  = "application/msword"
)

// допустимые типы содержимого и ожидаемые для них расширения
var allowedMimeTypes = map[string][]string{
	MimePdf:  {"pdf"},
	MimeDoc:  {"doc"},
	MimeDocx: {"docx"},
}

// сигнатуры форматов в первых байтах файла
var (
	signaturePdf  = []byte("%PDF")
	signatureZip  = []byte{0x50, 0x4B, 0x03, 0x04}
	signatureOle2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// FileInfo - сведения о загруженном файле
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string // заявленный клиентом, решения на нем не строятся
}

// CheckResumeFile - многоуровневая проверка файла резюме:
// размер, расширение, фактический тип содержимого и сигнатура формата.
// Проверки выполняются по порядку, первая неудача останавливает проверку.
// После успешной проверки позиция чтения возвращается в начало файла.
func CheckResumeFile(file io.ReadSeeker, info FileInfo) (detectedMime string, vErr *models.ValidationError) {
	if file == nil {
		return "", models.NewValidationError("resume", "файл не передан")
	}
	fileName := strings.ToLower(strings.TrimSpace(info.Name))
	if fileName == "" {
		return "", models.NewValidationError("resume", "файл должен иметь имя")
	}
	logger := log.WithField("file_name", fileName).WithField("file_size", info.Size)

	if info.Size > MaxFileSize {
		logger.Warn("файл резюме отклонен: превышен допустимый размер")
		return "", models.NewValidationError("resume",
			fmt.Sprintf("размер файла %d байт превышает допустимый максимум %d байт", info.Size, MaxFileSize))
	}

	ext := getExtension(fileName)
	switch ext {
	case "pdf", "docx", "doc":
	default:
		logger.WithField("extension", ext).Warn("файл резюме отклонен: недопустимое расширение")
		return "", models.NewValidationError("resume",
			fmt.Sprintf("недопустимое расширение файла '%s', допускаются только PDF и DOCX", ext))
	}

	detectedMime, err := sniffMime(file)
	if err != nil {
		logger.WithError(err).Error("ошибка определения типа содержимого файла резюме")
		return "", models.NewValidationError("resume",
			"не удалось проверить файл, убедитесь что это корректный PDF или DOCX")
	}
	expectedExts, ok := allowedMimeTypes[detectedMime]
	if !ok {
		logger.WithField("mime_type", detectedMime).Warn("файл резюме отклонен: недопустимый тип содержимого")
		return "", models.NewValidationError("resume",
			fmt.Sprintf("недопустимый тип файла, допускаются только PDF и DOCX, обнаружен: %s", detectedMime))
	}
	if !contains(expectedExts, ext) {
		logger.WithField("mime_type", detectedMime).
			WithField("extension", ext).
			Warn("файл резюме отклонен: расширение не соответствует содержимому")
		return "", models.NewValidationError("resume",
			fmt.Sprintf("расширение файла '%s' не соответствует его содержимому", ext))
	}

	// дополнительная проверка сигнатуры формата, сбой чтения здесь
	// не блокирует загрузку, несоответствие сигнатуры - блокирует
	header, err := readHeader(file, 8)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения сигнатуры файла резюме")
	} else if !hasKnownSignature(header) {
		logger.WithField("header", fmt.Sprintf("% x", header)).Warn("файл резюме отклонен: неизвестная сигнатура")
		return "", models.NewValidationError("resume",
			"файл поврежден или не является корректным PDF/DOCX")
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		logger.WithError(err).Error("ошибка возврата позиции чтения файла резюме")
		return "", models.NewValidationError("resume",
			"не удалось проверить файл, убедитесь что это корректный PDF или DOCX")
	}

	logger.WithField("mime_type", detectedMime).Info("файл резюме успешно проверен")
	return detectedMime, nil
}

// CheckContentSafety - облегченная эвристическая проверка:
// подозрительные шаблоны в имени файла и неправдоподобно малый размер.
// Собственные неожиданные сбои проверки не блокируют загрузку.
func CheckContentSafety(info FileInfo) *models.ValidationError {
	suspiciousPatterns := []string{
		"../", "..\\", ".exe", ".bat", ".cmd", ".scr", ".vbs",
		"<script", "javascript:", "data:", "vbscript:",
	}
	fileName := strings.ToLower(info.Name)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(fileName, pattern) {
			log.WithField("file_name", fileName).Warn("файл резюме отклонен: небезопасное имя файла")
			return models.NewValidationError("resume", "имя файла содержит небезопасные символы или шаблоны")
		}
	}
	if info.Size < minFileSize {
		log.WithField("file_name", fileName).
			WithField("file_size", info.Size).
			Warn("файл резюме отклонен: файл пуст или слишком мал")
		return models.NewValidationError("resume", "файл пуст или слишком мал для резюме")
	}
	return nil
}

func getExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return fileName[idx+1:]
}

// sniffMime - определение типа по первому 1КиБ содержимого,
// заявленный клиентом content-type не учитывается
func sniffMime(file io.ReadSeeker) (string, error) {
	head, err := readHeader(file, 1024)
	if err != nil {
		return "", err
	}
	// формат OLE2 (устаревший DOC) стандартная таблица не распознает
	if bytes.HasPrefix(head, signatureOle2) {
		return MimeDoc, nil
	}
	detected := http.DetectContentType(head)
	if idx := strings.Index(detected, ";"); idx > 0 {
		detected = detected[:idx]
	}
	// DOCX - это ZIP контейнер
	if detected == "application/zip" {
		return MimeDocx, nil
	}
	return detected, nil
}

func readHeader(file io.ReadSeeker, size int) ([]byte, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func hasKnownSignature(header []byte) bool {
	return bytes.HasPrefix(header, signaturePdf) ||
		bytes.HasPrefix(header, signatureZip) ||
		bytes.HasPrefix(header, signatureOle2)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
