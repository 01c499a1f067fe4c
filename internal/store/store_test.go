package store

import (
	"errors"
	"strings"
	"testing"

	"kosbackend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return New(db), mock, func() { db.Close() }
}

func TestAddFacilityWritesThroughAndAudits(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectExec("INSERT INTO facilities").WithArgs("WiFi").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO history").
		WithArgs(models.EventFacilityCreated, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	row, err := s.AddFacility("WiFi")
	if err != nil {
		t.Fatalf("AddFacility error: %v", err)
	}
	if row.ID != 7 || row.Name != "WiFi" {
		t.Fatalf("unexpected row %+v", row)
	}

	facilities := s.Facilities()
	if len(facilities) != 1 || facilities[0].ID != 7 {
		t.Fatalf("mirror not patched: %+v", facilities)
	}
	if got := s.FacilityName(7); got != "WiFi" {
		t.Fatalf("FacilityName = %q", got)
	}

	hist := s.History()
	if len(hist) != 1 {
		t.Fatalf("expected exactly one history record, got %d", len(hist))
	}
	if hist[0].EventType != models.EventFacilityCreated {
		t.Fatalf("event type %q", hist[0].EventType)
	}
	if !strings.Contains(string(hist[0].Data), "WiFi") {
		t.Fatalf("history data %s", hist[0].Data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddFacilityRemoteFailureLeavesMirrorUntouched(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectExec("INSERT INTO facilities").WithArgs("AC").
		WillReturnError(errors.New("koneksi putus"))

	if _, err := s.AddFacility("AC"); err == nil {
		t.Fatal("expected error from remote failure")
	}
	if got := s.Facilities(); len(got) != 0 {
		t.Fatalf("mirror should be empty, got %+v", got)
	}
	if got := s.History(); len(got) != 0 {
		t.Fatalf("no audit record expected, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadAllAttachesFacilityLinks(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, email").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "password", "full_name", "phone", "user_type",
		}).AddRow(1, "budi", "budi@example.com", "hash", "Budi Santoso", "0812", "customer"))
	mock.ExpectQuery("SELECT id, name FROM facilities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "WiFi").AddRow(2, "AC"))
	mock.ExpectQuery("SELECT id, name, price").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status", "image"}).
			AddRow(3, "Kamar A1", 1500000, "available", `["a.jpg"]`))
	mock.ExpectQuery("SELECT room_id, facility_id").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "facility_id"}).
			AddRow(3, 1).AddRow(3, 2))
	mock.ExpectQuery("SELECT id, user_id, room_id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "amount", "start_date", "end_date", "status",
		}))
	mock.ExpectQuery("SELECT id, booking_id, amount").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "amount", "status", "period", "due_date", "paid_at", "method", "callback_data",
		}))
	mock.ExpectQuery("SELECT id, event_type").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "data", "created_at"}))

	if err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}

	rooms := s.Rooms()
	if len(rooms) != 1 {
		t.Fatalf("expected one room, got %d", len(rooms))
	}
	if len(rooms[0].FacilityIDs) != 2 || rooms[0].FacilityIDs[0] != 1 || rooms[0].FacilityIDs[1] != 2 {
		t.Fatalf("facility links not attached: %+v", rooms[0].FacilityIDs)
	}
	if len(rooms[0].Image) != 1 || rooms[0].Image[0] != "a.jpg" {
		t.Fatalf("image list not decoded: %+v", rooms[0].Image)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
