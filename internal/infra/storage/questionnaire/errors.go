package questionnaire

import "errors"

var (
	// ErrQuestionnaireNotFound возвращается, когда анкета для категории не найдена
	ErrQuestionnaireNotFound = errors.New("questionnaire.repository: questionnaire not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("questionnaire.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("questionnaire.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("questionnaire.repository: failed to scan row")
)
