package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"marketplace-admin-server/models"
)

// DashboardService computes the derived read-side views shown on the admin
// dashboard. Nothing here is cached; every call reads current store state.
// The sub-queries are independent, so a concurrent write may be visible to
// one count and not another. That is accepted.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats is the headline stats snapshot
type DashboardStats struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	ActivePartners  int64   `json:"activePartners"`
	PendingBookings int64   `json:"pendingBookings"`
	CompletedToday  int64   `json:"completedToday"`
}

// Activity entry types for the merged feed
const (
	ActivityBookingCompleted = "booking_completed"
	ActivityBookingPending   = "booking_pending"
	ActivityNewPartner       = "new_partner"
	ActivityNewCustomer      = "new_customer"
)

// ActivityEntry is one rendered event in the recent-activity feed. Timestamp
// keeps the raw creation time in milliseconds; sorting uses it, never the
// rendered Time label.
type ActivityEntry struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Time      string `json:"time"`
	Icon      string `json:"icon"`
	Timestamp int64  `json:"timestamp"`
}

// Stats computes the four headline numbers from current store state
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RolePartner, true).
		Count(&stats.ActivePartners).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusPending).
		Count(&stats.PendingBookings).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = s.db.Model(&models.Booking{}).
		Where("status = ? AND updated_at >= ?", models.BookingStatusCompleted, startOfDay).
		Count(&stats.CompletedToday).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// RecentActivity merges the latest bookings, partner signups and customer
// signups into one feed: up to 5 recent bookings (only Completed and Pending
// ones yield entries), plus at most 2 of the 3 newest partners and customers
// each. Entries sort by creation time, newest first, capped at 5.
func (s *DashboardService) RecentActivity(now time.Time) ([]ActivityEntry, error) {
	var bookings []models.Booking
	err := s.db.Preload("Customer").Preload("Provider").
		Order("created_at DESC").Limit(5).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	var partners []models.User
	err = s.db.Where("role = ?", models.RolePartner).
		Order("created_at DESC").Limit(3).
		Find(&partners).Error
	if err != nil {
		return nil, err
	}

	var customers []models.User
	err = s.db.Where("role = ?", models.RoleCustomer).
		Order("created_at DESC").Limit(3).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}

	activity := make([]ActivityEntry, 0, 9)

	for _, booking := range bookings {
		customerName := booking.Customer.Name
		if customerName == "" {
			customerName = "Customer"
		}
		serviceName := booking.ServiceName
		if serviceName == "" {
			serviceName = "service"
		}

		switch booking.Status {
		case models.BookingStatusCompleted:
			activity = append(activity, ActivityEntry{
				Type:      ActivityBookingCompleted,
				Text:      fmt.Sprintf("%s completed a %s", customerName, serviceName),
				Time:      relativeTime(now, booking.CreatedAt),
				Icon:      "check",
				Timestamp: booking.CreatedAt.UnixMilli(),
			})
		case models.BookingStatusPending:
			activity = append(activity, ActivityEntry{
				Type:      ActivityBookingPending,
				Text:      fmt.Sprintf("%s requested a %s", customerName, serviceName),
				Time:      relativeTime(now, booking.CreatedAt),
				Icon:      "clock",
				Timestamp: booking.CreatedAt.UnixMilli(),
			})
		}
	}

	for _, partner := range truncateUsers(partners, 2) {
		name := partner.Name
		if name == "" {
			name = "New partner"
		}
		activity = append(activity, ActivityEntry{
			Type:      ActivityNewPartner,
			Text:      fmt.Sprintf("%s joined as a service provider", name),
			Time:      relativeTime(now, partner.CreatedAt),
			Icon:      "user_add",
			Timestamp: partner.CreatedAt.UnixMilli(),
		})
	}

	for _, customer := range truncateUsers(customers, 2) {
		name := customer.Name
		if name == "" {
			name = "New customer"
		}
		activity = append(activity, ActivityEntry{
			Type:      ActivityNewCustomer,
			Text:      fmt.Sprintf("%s joined the platform", name),
			Time:      relativeTime(now, customer.CreatedAt),
			Icon:      "user_add",
			Timestamp: customer.CreatedAt.UnixMilli(),
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})

	if len(activity) > 5 {
		activity = activity[:5]
	}
	return activity, nil
}

func truncateUsers(users []models.User, max int) []models.User {
	if len(users) > max {
		return users[:max]
	}
	return users
}

// relativeTime renders the wall-clock delta as "N minutes ago" below an hour,
// otherwise "N hours ago", both integer-truncated.
func relativeTime(now, t time.Time) string {
	minutes := int(now.Sub(t).Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	return fmt.Sprintf("%d hours ago", minutes/60)
}
