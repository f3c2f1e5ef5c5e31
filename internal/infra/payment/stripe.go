package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
)

// StripeGateway opens Checkout Sessions against a Stripe-compatible API. The
// reservation id rides in client_reference_id so the webhook can be correlated
// back to the hold.
type StripeGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewStripeGateway(cfg config.PaymentConfig, client *http.Client) *StripeGateway {
	return &StripeGateway{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

type stripeSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (g *StripeGateway) CreateSession(ctx context.Context, req commands.SessionRequest) (*commands.SessionHandle, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", req.ReservationID.String())
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", strconv.Itoa(req.Quantity))
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents/int64(req.Quantity), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ItemName)
	form.Set("metadata[order_id]", req.OrderID.String())
	form.Set("metadata[buyer_id]", req.BuyerID.String())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Wrapf(errSessionRejected, "status %d", resp.StatusCode)
	}

	var body stripeSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Mark(err, errSessionDecode)
	}
	if body.ID == "" || body.URL == "" {
		return nil, errs.Wrap(errSessionDecode, "session response missing id or url")
	}

	return &commands.SessionHandle{
		SessionID:   body.ID,
		RedirectURL: body.URL,
	}, nil
}
