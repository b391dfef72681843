package get_staff_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/service/bookings/models"
)

// parseQuery собирает запрос сервиса из query-параметров
func parseQuery(staffID int64, query url.Values) (*models.GetStaffBookingsRequest, error) {
	req := &models.GetStaffBookingsRequest{StaffID: staffID}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate format, expected YYYY-MM-DD: %v", err)
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate format, expected YYYY-MM-DD: %v", err)
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %v", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
