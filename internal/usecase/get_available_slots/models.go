package get_available_slots

import (
	"time"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID           int64     // ID пользователя (для логирования, не влияет на результат)
	ServiceID        int64     // ID услуги
	StaffID          *int64    // ID сотрудника; nil = любой сотрудник, оказывающий услугу
	Date             time.Time // Дата для получения слотов (без времени)
	ExtraIDs         []int64   // Дополнительные услуги, удлиняющие визит
	AdditionalGuests int       // Дополнительные гости, умножающие длительность
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Полная длительность визита
	Slots           []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	StaffIDs  []int64          // Сотрудники, свободные в это время
}
