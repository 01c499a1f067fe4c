// Package gateway talks to the Xendit invoice API. Only invoice
// creation is used; callbacks arrive through the webhook handler.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kosbackend/internal/domain"
)

const (
	DefaultBaseURL = "https://api.xendit.co"

	// externalIDPrefix ties an invoice back to our payment row. The
	// webhook recovers the payment id from this reference, so the
	// format (prefix, id, timestamp, dash-delimited) is a contract.
	externalIDPrefix = "kosapp-payment-"
)

type XenditClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewXenditClient(secretKey string) *XenditClient {
	return &XenditClient{
		BaseURL:    DefaultBaseURL,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type InvoiceRequest struct {
	ExternalID         string `json:"external_id"`
	Amount             int64  `json:"amount"`
	Description        string `json:"description"`
	PayerEmail         string `json:"payer_email"`
	SuccessRedirectURL string `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string `json:"failure_redirect_url,omitempty"`
	Currency           string `json:"currency"`
}

type Invoice struct {
	ID         string `json:"id"`
	InvoiceURL string `json:"invoice_url"`
}

// CreateInvoice requests a hosted invoice page. On any transport or
// provider failure it returns a GatewayError; the caller must not
// assume a payment was initiated.
func (c *XenditClient) CreateInvoice(req InvoiceRequest) (Invoice, error) {
	if req.Currency == "" {
		req.Currency = "IDR"
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Invoice{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL()+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return Invoice{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Xendit authenticates with the secret key as basic-auth username.
	httpReq.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return Invoice{}, domain.GatewayError{Msg: "xendit unreachable", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Invoice{}, domain.GatewayError{Msg: "xendit response read failed", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Invoice{}, domain.GatewayError{
			Msg: fmt.Sprintf("xendit rejected invoice (status %d): %s", resp.StatusCode, truncate(string(respBody), 300)),
		}
	}

	var inv Invoice
	if err := json.Unmarshal(respBody, &inv); err != nil {
		return Invoice{}, domain.GatewayError{Msg: "xendit response tidak valid", Err: err}
	}
	return inv, nil
}

// ExternalID builds the globally-unique invoice reference for a payment.
func ExternalID(paymentID int64, now time.Time) string {
	return fmt.Sprintf("%s%d-%d", externalIDPrefix, paymentID, now.Unix())
}

// ParseExternalID recovers the payment id from an invoice reference.
// Anything without the known prefix or a numeric id is rejected.
func ParseExternalID(externalID string) (int64, bool) {
	rest, ok := strings.CutPrefix(externalID, externalIDPrefix)
	if !ok {
		return 0, false
	}
	idPart, _, _ := strings.Cut(rest, "-")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (c *XenditClient) baseURL() string {
	if strings.TrimSpace(c.BaseURL) != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *XenditClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
