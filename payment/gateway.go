// Package payment is the adapter for a ZaloPay-style payment gateway: it
// signs outbound requests with a keyed MAC and verifies inbound callback
// signatures. It never touches order state; callers react to confirmed
// payments through a ConfirmationSink.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries the gateway credentials and endpoints. It is built once at
// startup and handed to NewGateway; the adapter never reads the environment
// at request time.
type Config struct {
	AppID         string
	Key1          string
	Key2          string
	Endpoint      string
	QueryEndpoint string
	CallbackURL   string
	RedirectURL   string
}

// LoadConfig assembles a Config from the environment, with the gateway's
// published sandbox defaults.
func LoadConfig() Config {
	return Config{
		AppID:         getenv("ZALOPAY_APP_ID", "2553"),
		Key1:          os.Getenv("ZALOPAY_KEY1"),
		Key2:          os.Getenv("ZALOPAY_KEY2"),
		Endpoint:      getenv("ZALOPAY_ENDPOINT", "https://sb-openapi.zalopay.vn/v2/create"),
		QueryEndpoint: getenv("ZALOPAY_QUERY_ENDPOINT", "https://sb-openapi.zalopay.vn/v2/query"),
		CallbackURL:   os.Getenv("ZALOPAY_CALLBACK_URL"),
		RedirectURL:   getenv("ZALOPAY_REDIRECT_URL", "http://localhost:4200/orders"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

type Gateway struct {
	cfg    Config
	client *resty.Client
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		cfg:    cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// ConfirmationSink receives verified payment callbacks. Wiring a sink is how
// the rest of the system reacts to a confirmed payment.
type ConfirmationSink interface {
	PaymentConfirmed(appTransID string, payload []byte) error
}

type CreateOrderRequest struct {
	Amount      int64
	Description string
	ReturnURL   string
	AppUser     string
}

type CreateOrderResult struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
	ZpTransToken  string `json:"zp_trans_token"`
	AppTransID    string `json:"app_trans_id"`
	Amount        int64  `json:"amount"`
	Raw           []byte `json:"-"`
}

// newAppTransID builds the gateway transaction id: current date (YYMMDD) plus
// a random numeric suffix, as the gateway requires.
func newAppTransID(now time.Time) string {
	return fmt.Sprintf("%s_%d", now.Format("060102"), rand.Intn(1000000))
}

// orderParams assembles the signed request parameters for a payment
// initiation. The MAC covers the pipe-delimited concatenation of the ordered
// fields, keyed with key1.
func (g *Gateway) orderParams(req CreateOrderRequest, now time.Time) (map[string]string, string, error) {
	appUser := req.AppUser
	if appUser == "" {
		appUser = "user123"
	}
	description := req.Description
	if description == "" {
		description = "Food order payment"
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = g.cfg.RedirectURL
	}

	embedData, err := json.Marshal(map[string]string{"redirecturl": returnURL})
	if err != nil {
		return nil, "", err
	}
	items, err := json.Marshal([]map[string]any{{
		"itemid":       "food_order",
		"itemname":     description,
		"itemprice":    req.Amount,
		"itemquantity": 1,
	}})
	if err != nil {
		return nil, "", err
	}

	appTransID := newAppTransID(now)
	appTime := strconv.FormatInt(now.UnixMilli(), 10)
	amount := strconv.FormatInt(req.Amount, 10)

	params := map[string]string{
		"app_id":       g.cfg.AppID,
		"app_trans_id": appTransID,
		"app_user":     appUser,
		"app_time":     appTime,
		"item":         string(items),
		"embed_data":   string(embedData),
		"amount":       amount,
		"description":  description,
		"bank_code":    "",
		"callback_url": g.cfg.CallbackURL,
	}

	payload := g.cfg.AppID + "|" + appTransID + "|" + appUser + "|" + amount + "|" +
		appTime + "|" + string(embedData) + "|" + string(items)
	params["mac"] = sign(g.cfg.Key1, payload)

	return params, appTransID, nil
}

// CreateOrder initiates a payment at the gateway and returns its response.
func (g *Gateway) CreateOrder(req CreateOrderRequest) (CreateOrderResult, error) {
	params, appTransID, err := g.orderParams(req, time.Now())
	if err != nil {
		return CreateOrderResult{}, err
	}

	resp, err := g.client.R().SetQueryParams(params).Post(g.cfg.Endpoint)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if resp.StatusCode() != 200 {
		return CreateOrderResult{}, fmt.Errorf("gateway create request failed with status %d: %s",
			resp.StatusCode(), resp.Body())
	}

	var result CreateOrderResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	result.AppTransID = appTransID
	result.Amount = req.Amount
	result.Raw = resp.Body()
	return result, nil
}

// VerifyCallback recomputes the MAC over the raw callback data with key2 and
// compares it against the supplied signature byte-for-byte.
func (g *Gateway) VerifyCallback(data, mac string) bool {
	expected := sign(g.cfg.Key2, data)
	return hmac.Equal([]byte(expected), []byte(mac))
}

type StatusResult struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	IsProcessing  bool   `json:"is_processing"`
	Amount        int64  `json:"amount"`
	ZpTransID     int64  `json:"zp_trans_id"`
}

// QueryStatus asks the gateway for a transaction's payment status. The status
// MAC covers app_id|app_trans_id|key1, keyed with key1.
func (g *Gateway) QueryStatus(appTransID string) (StatusResult, error) {
	payload := g.cfg.AppID + "|" + appTransID + "|" + g.cfg.Key1
	params := map[string]string{
		"app_id":       g.cfg.AppID,
		"app_trans_id": appTransID,
		"mac":          sign(g.cfg.Key1, payload),
	}

	resp, err := g.client.R().SetQueryParams(params).Post(g.cfg.QueryEndpoint)
	if err != nil {
		return StatusResult{}, err
	}
	if resp.StatusCode() != 200 {
		return StatusResult{}, fmt.Errorf("gateway status request failed with status %d: %s",
			resp.StatusCode(), resp.Body())
	}

	var result StatusResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return StatusResult{}, fmt.Errorf("failed to parse gateway status response: %w", err)
	}
	return result, nil
}

func sign(key, payload string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
