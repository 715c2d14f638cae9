package payment

import (
	"strings"
)

type Outcome string

const (
	OutcomeOK          Outcome = "OK"
	OutcomeAlreadyPaid Outcome = "OK_ALREADY_PAID"
	OutcomeInvalidSig  Outcome = "INVALID_SIG"
	OutcomeNotSuccess  Outcome = "NOT_SUCCESS"
	OutcomeNoBooking   Outcome = "NO_BOOKING"
	OutcomeNotPayable  Outcome = "NOT_PAYABLE"
)

const Provider = "payhere"

// Callback is a gateway notification after field aliases are resolved.
type Callback struct {
	MerchantID string
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode string
	Signature  string
	Method     string
	Raw        map[string]string
}

// ParseCallback reads a form- or JSON-decoded field set. The gateway's
// payhere_amount, payhere_currency and md5sig names are accepted.
func ParseCallback(fields map[string]string) Callback {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(fields[k]); v != "" {
				return v
			}
		}
		return ""
	}
	raw := make(map[string]string, len(fields))
	for k, v := range fields {
		raw[k] = v
	}
	return Callback{
		MerchantID: pick("merchant_id"),
		OrderID:    pick("order_id"),
		PaymentID:  pick("payment_id"),
		Amount:     pick("amount", "payhere_amount"),
		Currency:   pick("currency", "payhere_currency"),
		StatusCode: pick("status_code"),
		Signature:  pick("signature", "md5sig"),
		Method:     pick("method"),
		Raw:        raw,
	}
}

// Verify recomputes the signature with the normalized secret. A callback is
// never valid without configured credentials or for another merchant.
func (c Callback) Verify(merchantID, secret string) Verification {
	normalized, form := NormalizeSecret(secret)
	local := CallbackSignature(c.MerchantID, c.OrderID, c.Amount, c.Currency, c.StatusCode, normalized)
	merchantOK := merchantID != "" && c.MerchantID == merchantID
	return Verification{
		Valid:          strings.TrimSpace(secret) != "" && merchantOK && c.Signature != "" && strings.EqualFold(local, c.Signature),
		MerchantMatch:  merchantOK,
		LocalSignature: local,
		SecretForm:     form,
	}
}

func (c Callback) IsSuccess() bool {
	return c.StatusCode == SuccessStatusCode
}

type Verification struct {
	Valid          bool
	MerchantMatch  bool
	LocalSignature string
	SecretForm     SecretForm
}
