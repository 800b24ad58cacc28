package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Razorpay talks to the Razorpay Orders API. Signatures follow the documented
// scheme: hex(HMAC-SHA256("order_id|payment_id", key_secret)).
type Razorpay struct {
	keyID   string
	secret  string
	baseURL string
	client  *http.Client
}

func NewRazorpay(keyID, secret, baseURL string) *Razorpay {
	return &Razorpay{
		keyID:   keyID,
		secret:  secret,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *Razorpay) KeyID() string {
	return g.keyID
}

func (g *Razorpay) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":          amountCents,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway order create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway order create: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gateway order create: decode: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("gateway order create: empty order id")
	}
	return out.ID, nil
}

func (g *Razorpay) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
