package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"marketplace-admin-server/models"
)

// UserService owns identity reads and profile mutations, including the
// per-user booking rollups shown in the admin user list.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserWithRollup is an identity merged with its derived booking aggregates.
// The raw booking list is never included.
type UserWithRollup struct {
	models.User
	BookingsCount int64      `json:"bookingsCount"`
	TotalSpent    float64    `json:"totalSpent"`
	LastActive    *time.Time `json:"lastActive"`
}

type bookingAggregate struct {
	BookingsCount int64
	TotalSpent    float64
	LastActive    *time.Time
}

// ListWithRollups returns users (optionally filtered by role), each carrying
// bookingsCount, totalSpent and lastActive derived from the bookings that
// reference them as customer. TotalSpent sums the booking amount column.
func (s *UserService) ListWithRollups(role models.UserRole) ([]UserWithRollup, error) {
	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err := s.db.Select("customer_id", "amount", "created_at").Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uint]bookingAggregate)
	for _, booking := range bookings {
		agg := byCustomer[booking.CustomerID]
		agg.BookingsCount++
		agg.TotalSpent += booking.Amount
		createdAt := booking.CreatedAt
		if agg.LastActive == nil || createdAt.After(*agg.LastActive) {
			agg.LastActive = &createdAt
		}
		byCustomer[booking.CustomerID] = agg
	}

	result := make([]UserWithRollup, 0, len(users))
	for _, user := range users {
		row := UserWithRollup{User: user}
		if agg, ok := byCustomer[user.ID]; ok {
			row.BookingsCount = agg.BookingsCount
			row.TotalSpent = agg.TotalSpent
			row.LastActive = agg.LastActive
		}
		result = append(result, row)
	}
	return result, nil
}

// FindOrCreateByPhone resolves a login: an unknown phone number is
// auto-provisioned as a customer. Returns whether the user is new.
func (s *UserService) FindOrCreateByPhone(phone string) (*models.User, bool, error) {
	var user models.User
	err := s.db.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{Phone: phone, Role: models.RoleCustomer}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// GetProfile returns a user by id
func (s *UserService) GetProfile(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Documents").Preload("Addresses").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the optional profile fields; nil means leave as-is.
type ProfileUpdate struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	ProfileImage    *string `json:"profile_image"`
	Gender          *string `json:"gender"`
	DOB             *string `json:"dob"`
	ServiceCategory *string `json:"service_category"`
	ExperienceYears *int    `json:"experience_years"`
	Bio             *string `json:"bio"`
}

// UpdateProfile applies a partial profile update and returns the result
func (s *UserService) UpdateProfile(id uint, update ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.ProfileImage != nil {
		updates["profile_image"] = *update.ProfileImage
	}
	if update.Gender != nil {
		updates["gender"] = *update.Gender
	}
	if update.DOB != nil {
		updates["dob"] = *update.DOB
	}
	if update.ServiceCategory != nil {
		updates["service_category"] = *update.ServiceCategory
	}
	if update.ExperienceYears != nil {
		updates["experience_years"] = *update.ExperienceYears
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}

	if len(updates) > 0 {
		res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	return s.GetProfile(id)
}

// SetAvailability flips a partner online or offline
func (s *UserService) SetAvailability(id uint, isAvailable bool) (*models.User, error) {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("is_available", isAvailable)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetProfile(id)
}

// AddDocument appends a pending credential to a user's document set
func (s *UserService) AddDocument(userID uint, docType models.DocumentType, fileName, url string) (*models.Document, error) {
	if !models.IsValidDocumentType(docType) {
		return nil, ErrInvalidStatus
	}

	var user models.User
	err := s.db.Select("id").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	document := models.Document{
		UserID:     userID,
		Type:       docType,
		FileName:   fileName,
		URL:        url,
		UploadedAt: time.Now(),
		Status:     models.DocumentPending,
	}
	if err := s.db.Create(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// AddAddress appends an address; the first one a user adds becomes default
func (s *UserService) AddAddress(userID uint, req models.AddressRequest) ([]models.Address, error) {
	var user models.User
	err := s.db.Select("id").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
		return nil, err
	}

	label := req.Label
	if label == "" {
		label = "Home"
	}
	address := models.Address{
		UserID:      userID,
		Label:       label,
		FullAddress: req.FullAddress,
		City:        req.City,
		Pincode:     req.Pincode,
		Lat:         req.Lat,
		Lng:         req.Lng,
		IsDefault:   existing == 0,
	}
	if err := s.db.Create(&address).Error; err != nil {
		return nil, err
	}

	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}
