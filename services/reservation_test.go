package services

import (
	"errors"
	"testing"
	"time"

	"littlelemon-api/authz"
)

// Frozen clock for the date/time rules: 2025-06-15 14:30.
func frozenNow() time.Time {
	return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
}

func reservationInput() ReservationInput {
	return ReservationInput{
		Name:            "Alice",
		NumberOfGuests:  4,
		ReservationDate: "2025-06-20",
		ReservationTime: "18:00",
	}
}

func TestReservationValidation(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice", false)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	tests := []struct {
		name      string
		mutate    func(*ReservationInput)
		wantField string
	}{
		{"missing name", func(in *ReservationInput) { in.Name = "" }, "name"},
		{"zero guests", func(in *ReservationInput) { in.NumberOfGuests = 0 }, "number_of_guests"},
		{"too many guests", func(in *ReservationInput) { in.NumberOfGuests = 21 }, "number_of_guests"},
		{"bad date format", func(in *ReservationInput) { in.ReservationDate = "20/06/2025" }, "reservation_date"},
		{"bad time format", func(in *ReservationInput) { in.ReservationTime = "6pm" }, "reservation_time"},
		{"past date", func(in *ReservationInput) { in.ReservationDate = "2025-06-14" }, "reservation_date"},
		{"today, earlier than now", func(in *ReservationInput) {
			in.ReservationDate = "2025-06-15"
			in.ReservationTime = "12:00"
		}, "reservation_time"},
		{"before opening", func(in *ReservationInput) { in.ReservationTime = "10:59" }, "reservation_time"},
		{"after closing", func(in *ReservationInput) { in.ReservationTime = "22:01" }, "reservation_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := reservationInput()
			tt.mutate(&in)
			_, err := svc.Create(user.ID, in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if _, ok := vErr.Fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want message on %q", vErr.Fields, tt.wantField)
			}
		})
	}
}

func TestReservationBoundaryTimesAccepted(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice", false)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	for _, clock := range []string{"11:00", "22:00"} {
		in := reservationInput()
		in.ReservationTime = clock
		if _, err := svc.Create(user.ID, in); err != nil {
			t.Errorf("time %s rejected: %v", clock, err)
		}
	}
}

func TestReservationTodayLaterTimeAccepted(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice", false)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	// Same clock time: rejected today, accepted tomorrow.
	in := reservationInput()
	in.ReservationDate = "2025-06-15"
	in.ReservationTime = "12:00"
	if _, err := svc.Create(user.ID, in); err == nil {
		t.Error("today at a past time accepted, want rejection")
	}

	in.ReservationDate = "2025-06-16"
	if _, err := svc.Create(user.ID, in); err != nil {
		t.Errorf("tomorrow at the same clock time rejected: %v", err)
	}
}

func TestReservationDuplicateSlotConflicts(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice", false)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	if _, err := svc.Create(user.ID, reservationInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(user.ID, reservationInput()); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate slot error = %v, want ErrConflict", err)
	}

	// A different user may book the same slot.
	bob := createUser(t, db, "bob", false)
	if _, err := svc.Create(bob.ID, reservationInput()); err != nil {
		t.Errorf("same slot for another user rejected: %v", err)
	}
}

func TestReservationOwnershipHidesExistence(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	admin := createUser(t, db, "admin", true)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	res, err := svc.Create(alice.ID, reservationInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(authz.RoleCustomer, bob.ID, res.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner Get error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(authz.RoleCustomer, bob.ID, res.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner Delete error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(authz.RoleAdmin, admin.ID, res.ID); err != nil {
		t.Errorf("admin Get: %v", err)
	}

	aliceList, err := svc.List(authz.RoleCustomer, alice.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliceList) != 1 {
		t.Errorf("owner list = %d, want 1", len(aliceList))
	}
	bobList, _ := svc.List(authz.RoleCustomer, bob.ID)
	if len(bobList) != 0 {
		t.Errorf("non-owner list = %d, want 0", len(bobList))
	}
}

func TestReservationOwnerUpdate(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	svc := NewReservationService(db)
	svc.Now = frozenNow

	res, err := svc.Create(alice.ID, reservationInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Update(authz.RoleCustomer, alice.ID, res.ID, ReservationInput{NumberOfGuests: 8})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.NumberOfGuests != 8 {
		t.Errorf("guests = %d, want 8", got.NumberOfGuests)
	}
	if got.ReservationDate != "2025-06-20" || got.ReservationTime != "18:00" {
		t.Errorf("unpatched fields changed: %s %s", got.ReservationDate, got.ReservationTime)
	}

	// The merged record is re-validated.
	if _, err := svc.Update(authz.RoleCustomer, alice.ID, res.ID, ReservationInput{NumberOfGuests: 50}); err == nil {
		t.Error("update to 50 guests accepted, want validation error")
	}
}
