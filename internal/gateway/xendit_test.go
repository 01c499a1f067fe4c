package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kosbackend/internal/domain"
)

func TestExternalIDRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ext := ExternalID(42, now)
	if ext != "kosapp-payment-42-1700000000" {
		t.Fatalf("external id %q", ext)
	}
	id, ok := ParseExternalID(ext)
	if !ok || id != 42 {
		t.Fatalf("parse got id=%d ok=%v", id, ok)
	}
}

func TestParseExternalIDRejectsJunk(t *testing.T) {
	cases := []string{
		"",
		"kosapp-payment-",
		"kosapp-payment--1700000000",
		"kosapp-payment-abc-1700000000",
		"kosapp-payment-0-1700000000",
		"other-prefix-42-1700000000",
		"42-1700000000",
	}
	for _, c := range cases {
		if id, ok := ParseExternalID(c); ok {
			t.Fatalf("ParseExternalID(%q) accepted, id=%d", c, id)
		}
	}
}

func TestCreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/invoices" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "xnd_test_key" {
			t.Errorf("basic auth user %q", user)
		}
		var req InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Currency != "IDR" || req.Amount != 1500000 {
			t.Errorf("unexpected request body: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "inv-123",
			"invoice_url": "https://checkout.xendit.co/web/inv-123",
		})
	}))
	defer srv.Close()

	client := NewXenditClient("xnd_test_key")
	client.BaseURL = srv.URL

	inv, err := client.CreateInvoice(InvoiceRequest{
		ExternalID:  "kosapp-payment-42-1700000000",
		Amount:      1500000,
		Description: "Payment #42",
		PayerEmail:  "tenant@example.com",
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if inv.ID != "inv-123" || inv.InvoiceURL != "https://checkout.xendit.co/web/inv-123" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestCreateInvoiceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_code":"INVALID_API_KEY"}`))
	}))
	defer srv.Close()

	client := NewXenditClient("bad-key")
	client.BaseURL = srv.URL

	_, err := client.CreateInvoice(InvoiceRequest{ExternalID: "x", Amount: 1})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsGateway(err) {
		t.Fatalf("expected GatewayError, got %T: %v", err, err)
	}
}

func TestCreateInvoiceUnreachable(t *testing.T) {
	client := NewXenditClient("key")
	client.BaseURL = "http://127.0.0.1:1"
	client.HTTPClient = &http.Client{Timeout: 200 * time.Millisecond}

	_, err := client.CreateInvoice(InvoiceRequest{ExternalID: "x", Amount: 1})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsGateway(err) {
		t.Fatalf("expected GatewayError, got %T: %v", err, err)
	}
}
