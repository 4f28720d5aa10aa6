package usecases

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
)

// Monday 2025-03-10, 08:00 local time. All test windows are booked
// relative to this instant.
var clockNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var dbSeq atomic.Int64

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME NOT NULL
);
CREATE TABLE rooms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	capacity INTEGER NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE TABLE reservations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL
);`

// newTestDB opens a private in-memory database. A single connection is
// shared so every statement sees the same memory database and the
// transactions in the reservation repository serialize cleanly.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:usecases%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	db    *sql.DB
	users repositories.UserRepository
	rooms repositories.RoomRepository
	res   ReservationUsecase
	owner entities.User
	other entities.User
	room  entities.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	userRepo := repositories.NewUserRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	resRepo := repositories.NewReservationRepository(db)

	owner, err := userRepo.Create("pauline@example.fr", "x", "user")
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	other, err := userRepo.Create("marc@example.fr", "x", "user")
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	room, err := roomRepo.Create(entities.RoomRequest{Name: "Salle principale", Capacity: 10})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	uc := NewReservationUsecase(resRepo, roomRepo, booking.DefaultPolicy(), fixedClock{clockNow}, room.ID)
	return &fixture{db: db, users: userRepo, rooms: roomRepo, res: uc, owner: owner, other: other, room: room}
}

func wantUseCaseError(t *testing.T, err error, code int) *UseCaseError {
	t.Helper()
	var uce *UseCaseError
	if !errors.As(err, &uce) {
		t.Fatalf("want *UseCaseError, got %v", err)
	}
	if uce.Code != code {
		t.Fatalf("want status %d, got %d (%s)", code, uce.Code, uce.Message)
	}
	return uce
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Sprint review",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if created.RoomID != f.room.ID {
		t.Errorf("omitted roomId should resolve to the default room, got %d", created.RoomID)
	}
	if created.OwnerID != f.owner.ID {
		t.Errorf("OwnerID = %d, want %d", created.OwnerID, f.owner.ID)
	}

	got, err := f.res.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Start != "2025-03-11 09:00:00" || got.End != "2025-03-11 10:00:00" {
		t.Errorf("stored window = [%s, %s)", got.Start, got.End)
	}
	if got.OwnerEmail != f.owner.Email {
		t.Errorf("OwnerEmail = %q, want %q", got.OwnerEmail, f.owner.Email)
	}
	if got.OwnerName != "pauline" {
		t.Errorf("OwnerName = %q, want %q", got.OwnerName, "pauline")
	}
}

func TestCreateReservationAcceptsBrowserTimestamps(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Point client",
		Start: "2025-03-11T09:00:00.000Z",
		End:   "2025-03-11T10:00",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.Start != "2025-03-11 09:00:00" || created.End != "2025-03-11 10:00:00" {
		t.Errorf("window normalized to [%s, %s)", created.Start, created.End)
	}
}

func TestCreateReservationConflict(t *testing.T) {
	f := newFixture(t)

	if _, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Taken",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 11:00:00",
	}); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	_, err := f.res.Create(f.other.ID, entities.ReservationRequest{
		Title: "Overlapping",
		Start: "2025-03-11 10:00:00",
		End:   "2025-03-11 12:00:00",
	})
	uce := wantUseCaseError(t, err, http.StatusConflict)
	if uce.Message != "time slot already reserved" {
		t.Errorf("message = %q", uce.Message)
	}

	// Back to back is fine: windows are half-open.
	if _, err := f.res.Create(f.other.ID, entities.ReservationRequest{
		Title: "Adjacent",
		Start: "2025-03-11 11:00:00",
		End:   "2025-03-11 12:00:00",
	}); err != nil {
		t.Fatalf("adjacent reservation rejected: %v", err)
	}
}

func TestCreateReservationRejectsRuleViolations(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name        string
		start, end  string
		wantMessage string
	}{
		{"missing start", "", "2025-03-11 10:00:00", "start and end are required"},
		{"unparseable start", "pas une date", "2025-03-11 10:00:00", "start must be a YYYY-MM-DD HH:MM:SS timestamp"},
		{"unparseable end", "2025-03-11 09:00:00", "demain", "end must be a YYYY-MM-DD HH:MM:SS timestamp"},
		{"end before start", "2025-03-11 10:00:00", "2025-03-11 09:00:00", "end must be after start"},
		{"too short", "2025-03-11 09:00:00", "2025-03-11 09:30:00", "minimum duration is 60 minutes"},
		{"ends after closing", "2025-03-11 18:30:00", "2025-03-11 19:30:00", "reservations must end by 19:00"},
		{"in the past", "2025-03-09 09:00:00", "2025-03-09 10:00:00", "cannot book in the past"},
		{"saturday", "2025-03-15 09:00:00", "2025-03-15 10:00:00", "reservations are only allowed on weekdays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
				Title: "Refusée",
				Start: tt.start,
				End:   tt.end,
			})
			uce := wantUseCaseError(t, err, http.StatusBadRequest)
			if uce.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", uce.Message, tt.wantMessage)
			}
		})
	}
}

func TestCreateReservationUnknownRoom(t *testing.T) {
	f := newFixture(t)

	_, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title:  "Nowhere",
		Start:  "2025-03-11 09:00:00",
		End:    "2025-03-11 10:00:00",
		RoomID: 999,
	})
	wantUseCaseError(t, err, http.StatusNotFound)
}

func TestCreateReservationSeparateRooms(t *testing.T) {
	f := newFixture(t)

	annex, err := f.rooms.Create(entities.RoomRequest{Name: "Annexe", Capacity: 4})
	if err != nil {
		t.Fatal(err)
	}

	req := entities.ReservationRequest{
		Title: "Same window",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	}
	if _, err := f.res.Create(f.owner.ID, req); err != nil {
		t.Fatalf("first room: %v", err)
	}
	req.RoomID = annex.ID
	if _, err := f.res.Create(f.other.ID, req); err != nil {
		t.Fatalf("same window in another room rejected: %v", err)
	}
}

func TestUpdateReservationKeepsOwnSlot(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Atelier",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Extending inside its own window must not conflict with itself.
	updated, err := f.res.Update(created.ID, f.owner.ID, "user", entities.ReservationRequest{
		Title: "Atelier (rallongé)",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 11:00:00",
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.End != "2025-03-11 11:00:00" {
		t.Errorf("End = %q", updated.End)
	}
	if updated.Title != "Atelier (rallongé)" {
		t.Errorf("Title = %q", updated.Title)
	}
}

func TestUpdateReservationOwnership(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Réunion d'équipe",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	req := entities.ReservationRequest{
		Title: "Détournée",
		Start: "2025-03-11 14:00:00",
		End:   "2025-03-11 15:00:00",
	}

	_, err = f.res.Update(created.ID, f.other.ID, "user", req)
	wantUseCaseError(t, err, http.StatusForbidden)

	// Admins may edit anyone's reservation but ownership is preserved.
	updated, err := f.res.Update(created.ID, f.other.ID, "admin", req)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.OwnerID != f.owner.ID {
		t.Errorf("OwnerID = %d, want original owner %d", updated.OwnerID, f.owner.ID)
	}
}

func TestUpdateReservationStillValidated(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Valide",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Admin role bypasses ownership, never the booking rules.
	_, err = f.res.Update(created.ID, f.other.ID, "admin", entities.ReservationRequest{
		Title: "Samedi",
		Start: "2025-03-15 09:00:00",
		End:   "2025-03-15 10:00:00",
	})
	wantUseCaseError(t, err, http.StatusBadRequest)
}

func TestUpdateReservationNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.res.Update(42, f.owner.ID, "user", entities.ReservationRequest{
		Title: "Fantôme",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	wantUseCaseError(t, err, http.StatusNotFound)
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "A supprimer",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	err = f.res.Delete(created.ID, f.other.ID, "user")
	wantUseCaseError(t, err, http.StatusForbidden)

	if err := f.res.Delete(created.ID, f.owner.ID, "user"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	err = f.res.Delete(created.ID, f.owner.ID, "user")
	wantUseCaseError(t, err, http.StatusNotFound)
}

func TestIsAvailable(t *testing.T) {
	f := newFixture(t)

	created, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Occupé",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	free, err := f.res.IsAvailable(0, "2025-03-11 09:30:00", "2025-03-11 10:30:00", 0)
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Error("overlapping window reported available")
	}

	free, err = f.res.IsAvailable(0, "2025-03-11 10:00:00", "2025-03-11 11:00:00", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("adjacent window reported unavailable")
	}

	// Excluding the reservation itself frees its window, which is how
	// the frontend probes before an in-place edit.
	free, err = f.res.IsAvailable(0, "2025-03-11 09:30:00", "2025-03-11 10:30:00", created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("window still unavailable when excluding its own reservation")
	}
}

func TestListByPeriod(t *testing.T) {
	f := newFixture(t)

	for _, w := range [][2]string{
		{"2025-03-11 09:00:00", "2025-03-11 10:00:00"},
		{"2025-03-12 09:00:00", "2025-03-12 10:00:00"},
	} {
		if _, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
			Title: "Créneau",
			Start: w[0],
			End:   w[1],
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := f.res.ListByPeriod("2025-03-11 00:00:00", "2025-03-12 00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByPeriod() returned %d reservations, want 1", len(got))
	}
	if got[0].Start != "2025-03-11 09:00:00" {
		t.Errorf("Start = %q", got[0].Start)
	}
}

func TestListByOwner(t *testing.T) {
	f := newFixture(t)

	if _, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
		Title: "Mien",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.res.Create(f.other.ID, entities.ReservationRequest{
		Title: "Sien",
		Start: "2025-03-11 14:00:00",
		End:   "2025-03-11 15:00:00",
	}); err != nil {
		t.Fatal(err)
	}

	mine, err := f.res.ListByOwner(f.owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Title != "Mien" {
		t.Errorf("ListByOwner() = %+v", mine)
	}
}

// Listing is a pure read: two consecutive calls return identical
// results, ordered by start ascending regardless of insertion order.
func TestListAllIdempotentAndOrdered(t *testing.T) {
	f := newFixture(t)

	for _, w := range [][2]string{
		{"2025-03-11 14:00:00", "2025-03-11 15:00:00"},
		{"2025-03-11 09:00:00", "2025-03-11 10:00:00"},
		{"2025-03-11 11:00:00", "2025-03-11 12:00:00"},
	} {
		if _, err := f.res.Create(f.owner.ID, entities.ReservationRequest{
			Title: "Créneau",
			Start: w[0],
			End:   w[1],
		}); err != nil {
			t.Fatal(err)
		}
	}

	first, err := f.res.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.res.ListAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 3 {
		t.Fatalf("ListAll() returned %d reservations, want 3", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Start > first[i].Start {
			t.Errorf("not ordered by start: %q before %q", first[i-1].Start, first[i].Start)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive reads differ:\n%+v\n%+v", first, second)
	}
}

// Concurrent requests for the same window must produce exactly one
// reservation; the losers get the conflict status, never a double
// booking.
func TestConcurrentCreateSingleWinner(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	req := entities.ReservationRequest{
		Title: "Ruée",
		Start: "2025-03-11 09:00:00",
		End:   "2025-03-11 10:00:00",
	}

	var wg sync.WaitGroup
	var created, conflicted atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.res.Create(f.owner.ID, req)
			switch {
			case err == nil:
				created.Add(1)
			default:
				var uce *UseCaseError
				if errors.As(err, &uce) && uce.Code == http.StatusConflict {
					conflicted.Add(1)
				} else {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("%d reservations created, want exactly 1", created.Load())
	}
	if conflicted.Load() != workers-1 {
		t.Errorf("%d conflicts, want %d", conflicted.Load(), workers-1)
	}

	all, err := f.res.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("%d rows persisted, want 1", len(all))
	}
}
