package services

import (
	"errors"
	"time"

	"littlelemon-api/authz"
	"littlelemon-api/models"

	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	minGuests = 1
	maxGuests = 20
)

// Business hours: reservations run 11:00 through 22:00 inclusive.
var (
	openingTime = mustClock("11:00")
	closingTime = mustClock("22:00")
)

func mustClock(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ReservationService validates and stores table bookings. Now is injectable
// so the today/past-time rules can be pinned in tests.
type ReservationService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db, Now: time.Now}
}

// ReservationInput is the caller-supplied slice of a reservation.
type ReservationInput struct {
	Name            string
	NumberOfGuests  int
	ReservationDate string
	ReservationTime string
	SpecialRequests string
}

func (s *ReservationService) validate(in ReservationInput) error {
	fields := map[string]string{}

	if in.Name == "" {
		fields["name"] = "Name is required"
	}
	if in.NumberOfGuests < minGuests {
		fields["number_of_guests"] = "Number of guests must be at least 1"
	} else if in.NumberOfGuests > maxGuests {
		fields["number_of_guests"] = "Number of guests cannot exceed 20. Please contact us for larger parties."
	}

	day, err := time.Parse(dateLayout, in.ReservationDate)
	if err != nil {
		fields["reservation_date"] = "Date must be in YYYY-MM-DD format"
	}
	clock, err := time.Parse(timeLayout, in.ReservationTime)
	if err != nil {
		fields["reservation_time"] = "Time must be in HH:MM format"
	}

	if _, ok := fields["reservation_date"]; !ok {
		now := s.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(today) {
			fields["reservation_date"] = "Reservation date cannot be in the past"
		} else if _, timeBad := fields["reservation_time"]; !timeBad && day.Equal(today) {
			current := mustClock(now.Format(timeLayout))
			if clock.Before(current) {
				fields["reservation_time"] = "Reservation time cannot be in the past"
			}
		}
	}
	if _, ok := fields["reservation_time"]; !ok {
		if clock.Before(openingTime) || clock.After(closingTime) {
			fields["reservation_time"] = "Reservations are only available between 11:00 AM and 10:00 PM"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create validates the booking and inserts it. A duplicate
// (user, date, time) slot surfaces as a conflict from the unique index, not
// from a pre-read, so concurrent inserts cannot slip through.
func (s *ReservationService) Create(userID uint, in ReservationInput) (*models.Reservation, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	res := models.Reservation{
		UserID:          userID,
		Name:            in.Name,
		NumberOfGuests:  in.NumberOfGuests,
		ReservationDate: in.ReservationDate,
		ReservationTime: in.ReservationTime,
		SpecialRequests: in.SpecialRequests,
	}
	if err := s.DB.Create(&res).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &res, nil
}

// List returns the actor's reservations; admins see everyone's.
func (s *ReservationService) List(role authz.Role, actorID uint) ([]models.Reservation, error) {
	q := s.DB.Order("reservation_date desc, reservation_time desc")
	if !authz.SeesAllReservations(role) {
		q = q.Where("user_id = ?", actorID)
	}
	var out []models.Reservation
	err := q.Find(&out).Error
	return out, err
}

// Get fetches one reservation. A row owned by someone else reads as not
// found for non-admins.
func (s *ReservationService) Get(role authz.Role, actorID, id uint) (*models.Reservation, error) {
	q := s.DB.Session(&gorm.Session{})
	if !authz.SeesAllReservations(role) {
		q = q.Where("user_id = ?", actorID)
	}
	var res models.Reservation
	if err := q.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Update re-validates the merged record and saves it, owner or admin only.
func (s *ReservationService) Update(role authz.Role, actorID, id uint, in ReservationInput) (*models.Reservation, error) {
	res, err := s.Get(role, actorID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		res.Name = in.Name
	}
	if in.NumberOfGuests != 0 {
		res.NumberOfGuests = in.NumberOfGuests
	}
	if in.ReservationDate != "" {
		res.ReservationDate = in.ReservationDate
	}
	if in.ReservationTime != "" {
		res.ReservationTime = in.ReservationTime
	}
	if in.SpecialRequests != "" {
		res.SpecialRequests = in.SpecialRequests
	}
	if err := s.validate(ReservationInput{
		Name:            res.Name,
		NumberOfGuests:  res.NumberOfGuests,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		SpecialRequests: res.SpecialRequests,
	}); err != nil {
		return nil, err
	}
	if err := s.DB.Save(res).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return res, nil
}

// Delete removes an owned (or, for admins, any) reservation.
func (s *ReservationService) Delete(role authz.Role, actorID, id uint) error {
	res, err := s.Get(role, actorID, id)
	if err != nil {
		return err
	}
	return s.DB.Delete(res).Error
}
