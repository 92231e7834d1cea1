package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		AppID:       "2553",
		Key1:        "test-key-one",
		Key2:        "test-key-two",
		CallbackURL: "https://example.com/api/payment/callback",
		RedirectURL: "https://example.com/orders",
	}
}

func hmacHex(key, payload string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestOrderParamsSignature(t *testing.T) {
	gateway := NewGateway(testConfig())
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	params, appTransID, err := gateway.orderParams(CreateOrderRequest{
		Amount:      150000,
		Description: "Order #42",
		AppUser:     "user42",
	}, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(appTransID, "250615_"), appTransID)
	assert.Equal(t, appTransID, params["app_trans_id"])
	assert.Equal(t, "150000", params["amount"])
	assert.Equal(t, "user42", params["app_user"])

	// The MAC must cover the pipe-delimited ordered fields, keyed with key1.
	payload := params["app_id"] + "|" + params["app_trans_id"] + "|" + params["app_user"] + "|" +
		params["amount"] + "|" + params["app_time"] + "|" + params["embed_data"] + "|" + params["item"]
	assert.Equal(t, hmacHex("test-key-one", payload), params["mac"])
}

func TestOrderParamsDefaults(t *testing.T) {
	gateway := NewGateway(testConfig())

	params, _, err := gateway.orderParams(CreateOrderRequest{Amount: 50000}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "user123", params["app_user"])
	assert.Contains(t, params["embed_data"], "https://example.com/orders")
	assert.Equal(t, "https://example.com/api/payment/callback", params["callback_url"])
}

func TestVerifyCallback(t *testing.T) {
	gateway := NewGateway(testConfig())
	data := `{"app_trans_id":"250615_123456","amount":150000}`

	validMac := hmacHex("test-key-two", data)
	assert.True(t, gateway.VerifyCallback(data, validMac))

	// Tampered payloads and wrong-key signatures never pass.
	assert.False(t, gateway.VerifyCallback(data+" ", validMac))
	assert.False(t, gateway.VerifyCallback(data, hmacHex("test-key-one", data)))
	assert.False(t, gateway.VerifyCallback(data, ""))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		// The gateway side recomputes the MAC the same way.
		payload := query.Get("app_id") + "|" + query.Get("app_trans_id") + "|" + query.Get("app_user") + "|" +
			query.Get("amount") + "|" + query.Get("app_time") + "|" + query.Get("embed_data") + "|" + query.Get("item")
		if query.Get("mac") != hmacHex("test-key-one", payload) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"return_code":-1,"return_message":"mac not equal"}`))
			return
		}

		w.Write([]byte(`{"return_code":1,"return_message":"success","order_url":"https://pay.example.com/x","zp_trans_token":"tok123"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Endpoint = server.URL
	gateway := NewGateway(cfg)

	result, err := gateway.CreateOrder(CreateOrderRequest{Amount: 150000, Description: "Order #42"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReturnCode)
	assert.Equal(t, "https://pay.example.com/x", result.OrderURL)
	assert.Equal(t, "tok123", result.ZpTransToken)
	assert.Equal(t, int64(150000), result.Amount)
	assert.NotEmpty(t, result.AppTransID)
}

func TestQueryStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		payload := query.Get("app_id") + "|" + query.Get("app_trans_id") + "|" + "test-key-one"
		if query.Get("mac") != hmacHex("test-key-one", payload) {
			w.Write([]byte(`{"return_code":-1,"return_message":"mac not equal"}`))
			return
		}

		w.Write([]byte(`{"return_code":1,"return_message":"success","amount":150000,"zp_trans_id":999}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.QueryEndpoint = server.URL
	gateway := NewGateway(cfg)

	result, err := gateway.QueryStatus("250615_123456")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReturnCode)
	assert.Equal(t, int64(150000), result.Amount)
	assert.Equal(t, int64(999), result.ZpTransID)
}
