package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkRecorder struct {
	confirmed []string
}

func (s *sinkRecorder) PaymentConfirmed(appTransID string, payload []byte) error {
	s.confirmed = append(s.confirmed, appTransID)
	return nil
}

func callbackMac(key, data string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentCallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gateway := payment.NewGateway(payment.Config{AppID: "2553", Key1: "k1", Key2: "k2"})

	data := `{"app_trans_id":"250615_123456","amount":150000}`

	tests := []struct {
		name               string
		body               string
		expectedReturnCode float64
		expectConfirmed    bool
	}{
		{
			name:               "valid_signature",
			body:               `{"data":` + jsonQuote(data) + `,"mac":"` + callbackMac("k2", data) + `"}`,
			expectedReturnCode: 1,
			expectConfirmed:    true,
		},
		{
			name:               "wrong_signature",
			body:               `{"data":` + jsonQuote(data) + `,"mac":"deadbeef"}`,
			expectedReturnCode: -1,
		},
		{
			name:               "signature_from_wrong_key",
			body:               `{"data":` + jsonQuote(data) + `,"mac":"` + callbackMac("k1", data) + `"}`,
			expectedReturnCode: -1,
		},
		{
			name:               "unparseable_payload_with_valid_signature",
			body:               `{"data":"not json","mac":"` + callbackMac("k2", "not json") + `"}`,
			expectedReturnCode: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sink := &sinkRecorder{}
			router := gin.New()
			router.POST("/callback", PaymentCallback(gateway, sink))

			req := httptest.NewRequest("POST", "/callback", strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			require.Equal(t, http.StatusOK, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, testCase.expectedReturnCode, body["return_code"])

			if testCase.expectConfirmed {
				assert.Equal(t, []string{"250615_123456"}, sink.confirmed)
			} else {
				assert.Empty(t, sink.confirmed)
			}
		})
	}
}

// jsonQuote JSON-quotes a string for embedding in a request body.
func jsonQuote(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
