package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newWebhookHandler(t *testing.T, callbackToken string) (*Handler, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	h := New(intconfig.Env{XenditCallbackToken: callbackToken}, store.New(db), nil, nil)
	return h, mock, func() { db.Close() }
}

func postWebhook(h *Handler, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/webhook/xendit", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if token != "" {
		c.Request.Header.Set("x-callback-token", token)
	}
	h.XenditWebhook(c)
	return w
}

func TestWebhookTokenMismatchWritesNothing(t *testing.T) {
	h, mock, done := newWebhookHandler(t, "secret")
	defer done()

	w := postWebhook(h, "wrong", `{"external_id":"kosapp-payment-42-1700000000","status":"PAID"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
	// zero datastore writes on auth failure
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected datastore activity: %v", err)
	}
}

func TestWebhookPaidTriggersSettlementOnce(t *testing.T) {
	h, mock, done := newWebhookHandler(t, "secret")
	defer done()

	mock.ExpectQuery("SELECT id, booking_id, amount, status").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "amount", "status", "period", "due_date", "paid_at", "method", "callback_data",
		}).AddRow(42, 5, 1500000, "pending", "Mar 2025", "2025-03-31", "", "", ""))

	mock.ExpectExec("UPDATE payments SET status=\\?, paid_at=\\?, method=\\?").
		WithArgs("paid", sqlmock.AnyArg(), "BANK_TRANSFER", int64(42), "paid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO history").
		WithArgs("payment_received", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery("SELECT id, user_id, room_id").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "amount", "start_date", "end_date", "status",
		}).AddRow(5, 2, 3, 1500000, "2025-01-01", "2025-03-31", "active"))

	mock.ExpectExec("UPDATE bookings SET end_date=\\?").
		WithArgs("2025-04-30", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(5), int64(1500000), "pending", "Apr 2025", "2025-04-30").
		WillReturnResult(sqlmock.NewResult(78, 1))

	mock.ExpectExec("INSERT INTO history").
		WithArgs("booking_extended", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	mock.ExpectExec("UPDATE payments SET callback_data=\\?").
		WithArgs(sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postWebhook(h, "secret",
		`{"external_id":"kosapp-payment-42-1700000000","status":"PAID","payment_method":"BANK_TRANSFER"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["received"] != true {
		t.Fatalf("expected received=true, got %v", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookExpiredOnlyMarksPayment(t *testing.T) {
	h, mock, done := newWebhookHandler(t, "")
	defer done()

	mock.ExpectExec("UPDATE payments SET status=\\? WHERE id=\\?").
		WithArgs("expired", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postWebhook(h, "", `{"external_id":"kosapp-payment-42-1700000000","status":"EXPIRED"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	// no booking reads or writes for an expiry
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookUnknownExternalIDAcknowledged(t *testing.T) {
	h, mock, done := newWebhookHandler(t, "")
	defer done()

	w := postWebhook(h, "", `{"external_id":"someone-elses-ref","status":"PAID"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected datastore activity: %v", err)
	}
}

func TestWebhookUnparseableBody(t *testing.T) {
	h, mock, done := newWebhookHandler(t, "")
	defer done()

	w := postWebhook(h, "", `{{{not json`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected datastore activity: %v", err)
	}
}
