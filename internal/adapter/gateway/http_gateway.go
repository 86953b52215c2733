package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// HTTPGateway talks to the payment processor's REST API using key/secret
// basic auth. Every call is bounded by the client timeout; a timeout or
// network failure maps to domain.ErrGatewayUnavailable and leaves domain
// state untouched.
type HTTPGateway struct {
	baseURL  string
	keyID    string
	secret   string
	currency string
	httpc    *http.Client
}

func NewHTTPGateway(baseURL, keyID, secret, currency string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		baseURL:  baseURL,
		keyID:    keyID,
		secret:   secret,
		currency: currency,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type gatewayOrderReq struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type gatewayOrderResp struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type gatewayPaymentResp struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (*usecase.GatewayOrder, error) {
	body, err := json.Marshal(gatewayOrderReq{
		Amount:   amountPaise,
		Currency: g.currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	var out gatewayOrderResp
	if err := g.do(req, &out); err != nil {
		return nil, err
	}
	return &usecase.GatewayOrder{
		ID:          out.ID,
		AmountPaise: out.Amount,
		Currency:    out.Currency,
		Status:      out.Status,
	}, nil
}

func (g *HTTPGateway) FetchPayment(ctx context.Context, gatewayPaymentID string) (*usecase.GatewayPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payments/"+gatewayPaymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.secret)

	var out gatewayPaymentResp
	if err := g.do(req, &out); err != nil {
		return nil, err
	}
	return &usecase.GatewayPayment{
		ID:             out.ID,
		GatewayOrderID: out.OrderID,
		AmountPaise:    out.Amount,
		Currency:       out.Currency,
		Status:         out.Status,
	}, nil
}

// VerifySignature checks the processor's HMAC over "orderID|paymentID".
// The shared secret never leaves this adapter.
func (g *HTTPGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return VerifySignature([]byte(g.secret), gatewayOrderID, gatewayPaymentID, signature)
}

func (g *HTTPGateway) do(req *http.Request, out any) error {
	resp, err := g.httpc.Do(req)
	if err != nil {
		// Timeouts, DNS failures, refused connections: the caller may
		// retry, and nothing was assumed about the outcome.
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: gateway returned %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("gateway rejected request: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}

var _ usecase.PaymentGateway = (*HTTPGateway)(nil)
