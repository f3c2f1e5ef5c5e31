package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
)

// MercadoPagoGateway opens checkout preferences against a MercadoPago-compatible
// API. external_reference carries the reservation id for webhook correlation.
type MercadoPagoGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewMercadoPagoGateway(cfg config.PaymentConfig, client *http.Client) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

type mpPreferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type mpBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
}

type mpPreferenceRequest struct {
	ExternalReference string             `json:"external_reference"`
	Items             []mpPreferenceItem `json:"items"`
	BackURLs          mpBackURLs         `json:"back_urls"`
	AutoReturn        string             `json:"auto_return"`
}

type mpPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

func (g *MercadoPagoGateway) CreateSession(ctx context.Context, req commands.SessionRequest) (*commands.SessionHandle, error) {
	payload := mpPreferenceRequest{
		ExternalReference: req.ReservationID.String(),
		Items: []mpPreferenceItem{{
			Title:     req.ItemName,
			Quantity:  req.Quantity,
			UnitPrice: float64(req.AmountCents/int64(req.Quantity)) / 100,
		}},
		BackURLs: mpBackURLs{
			Success: req.SuccessURL,
			Failure: req.CancelURL,
		},
		AutoReturn: "approved",
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/checkout/preferences", bytes.NewReader(raw))
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.Wrapf(errSessionRejected, "status %d", resp.StatusCode)
	}

	var body mpPreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Mark(err, errSessionDecode)
	}
	if body.ID == "" || body.InitPoint == "" {
		return nil, errs.Wrap(errSessionDecode, "preference response missing id or init_point")
	}

	return &commands.SessionHandle{
		SessionID:   body.ID,
		RedirectURL: body.InitPoint,
	}, nil
}
