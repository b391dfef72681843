package find_next_available

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	findNextAvailable "github.com/chrisnails1212/salon-booking-engine/internal/usecase/find_next_available"
)

// Response HTTP response model
type Response struct {
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "10:00"
	StaffIDs        []int64 `json:"staffIds"`
	ServiceID       int64   `json:"serviceId"`
	DurationMinutes int     `json:"durationMinutes"`
}

// parseQuery собирает запрос use case из path и query параметров
func parseQuery(serviceID int64, userID int64, query url.Values) (*findNextAvailable.Request, error) {
	req := &findNextAvailable.Request{
		UserID:    userID,
		ServiceID: serviceID,
	}

	if raw := query.Get("fromDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.FromDate = &date
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
func FromUseCaseResponse(resp *findNextAvailable.Response) *Response {
	return &Response{
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		StaffIDs:        resp.StaffIDs,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
	}
}
