package find_next_available

import (
	"time"

	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// Request модель запроса на поиск ближайшего свободного слота
type Request struct {
	UserID           int64      // ID пользователя (для логирования, не влияет на результат)
	ServiceID        int64      // ID услуги
	StaffID          *int64     // ID сотрудника; nil = любой сотрудник, оказывающий услугу
	FromDate         *time.Time // Дата отсчета; nil = сегодня
	ExtraIDs         []int64    // Дополнительные услуги, удлиняющие визит
	AdditionalGuests int        // Дополнительные гости, умножающие длительность
}

// Response модель ответа с ближайшим свободным слотом
type Response struct {
	Date            time.Time        // Дата найденного слота
	StartTime       types.TimeString // Время начала
	StaffIDs        []int64          // Сотрудники, свободные в это время
	ServiceID       int64            // ID услуги
	DurationMinutes int              // Полная длительность визита
}
