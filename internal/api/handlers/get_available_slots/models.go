package get_available_slots

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	getAvailableSlots "github.com/chrisnails1212/salon-booking-engine/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "10:00"
	StaffIDs  []int64 `json:"staffIds"`
}

// Response HTTP response model
type Response struct {
	Date            string         `json:"date"` // "2026-09-15"
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// parseQuery собирает запрос use case из path и query параметров
func parseQuery(serviceID int64, userID int64, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("extraIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			req.ExtraIDs = append(req.ExtraIDs, id)
		}
	}

	if raw := query.Get("additionalGuests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.AdditionalGuests = guests
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *Response {
	out := &Response{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, len(resp.Slots)),
	}
	for i, slot := range resp.Slots {
		out.Slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			StaffIDs:  slot.StaffIDs,
		}
	}
	return out
}
