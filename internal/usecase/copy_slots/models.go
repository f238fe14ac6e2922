package copy_slots

// Destination день-получатель: категория и день недели (0 - воскресенье)
type Destination struct {
	SessionCategory string
	DayID           int
}

// Request модель запроса копирования шаблонных слотов
type Request struct {
	SourceCategory string
	SourceDayID    int
	Destinations   []Destination
}

// Response результат копирования
type Response struct {
	SlotsCopied  int // Слотов в дне-источнике
	Destinations int // Дней-получателей перезаписано
}
