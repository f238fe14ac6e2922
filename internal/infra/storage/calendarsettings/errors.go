package calendarsettings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки календаря ещё не заданы
	ErrSettingsNotFound = errors.New("calendarsettings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendarsettings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendarsettings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendarsettings.repository: failed to scan row")
)
