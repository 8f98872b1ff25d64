package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"invoice-reconciliation-service/internal/config"
	"invoice-reconciliation-service/internal/logger"
	"invoice-reconciliation-service/internal/models"
)

// ErrUpstream indicates that the ERP token or data fetch failed. Every
// gateway failure mode wraps it so callers can map the whole path onto a
// single upstream-failure signal.
var ErrUpstream = errors.New("erp fetch failed")

// Gateway fetches purchase-order snapshots from the ERP OData API. Each
// fetch exchanges client credentials for a bearer token and then issues
// one authenticated GET; the token is requested fresh on every call.
type Gateway struct {
	tokenURL     string
	clientID     string
	clientSecret string
	apiURL       string
	httpClient   *http.Client
	log          zerolog.Logger
}

func NewGateway(cfg config.SAPConfig, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		apiURL:       cfg.APIURL,
		httpClient:   httpClient,
		log:          logger.WithComponent("erp"),
	}
}

// FetchPurchaseOrders runs the two-step call: client-credentials token,
// then the purchase-order GET. No retry, no token caching.
func (g *Gateway) FetchPurchaseOrders(ctx context.Context) ([]*models.PurchaseOrderRecord, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: token request: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	token.SetAuthHeader(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: data request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.Warn().Int("status", resp.StatusCode).Msg("ERP data request rejected")
		return nil, fmt.Errorf("%w: data request returned status %d", ErrUpstream, resp.StatusCode)
	}

	records, err := decodePurchaseOrders(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	g.log.Debug().Int("records", len(records)).Msg("Fetched purchase orders from ERP")
	return records, nil
}

// fetchToken builds a throwaway token source per call so no token is
// ever reused across fetches.
func (g *Gateway) fetchToken(ctx context.Context) (*oauth2.Token, error) {
	cc := clientcredentials.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		TokenURL:     g.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	return cc.Token(ctx)
}

// decodePurchaseOrders accepts either the wrapped OData form
// {"value": [...]} or a bare array.
func decodePurchaseOrders(body []byte) ([]*models.PurchaseOrderRecord, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []*models.PurchaseOrderRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope struct {
		Value []*models.PurchaseOrderRecord `json:"value"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Value, nil
}
