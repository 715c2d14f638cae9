package payment

import (
	"crypto/md5" //nolint:gosec // the gateway defines the signature as MD5
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const SuccessStatusCode = "2"

type SecretForm string

const (
	SecretLiteral       SecretForm = "literal"
	SecretBase64Decoded SecretForm = "base64_decoded"
)

const (
	minDecodedSecretLen = 6
	minPrintableRatio   = 0.9
)

// NormalizeSecret accepts merchant secrets pasted either as issued or base64
// encoded. The decoded form wins only when it looks like text: at least 6
// bytes with 90% or more printable ASCII. This is a convenience heuristic,
// not a security boundary; a literal secret that happens to decode cleanly
// would be misread.
func NormalizeSecret(secret string) (string, SecretForm) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(secret))
	if err != nil || len(decoded) < minDecodedSecretLen {
		return secret, SecretLiteral
	}
	printable := 0
	for _, c := range decoded {
		if c >= 0x20 && c <= 0x7e {
			printable++
		}
	}
	if float64(printable)/float64(len(decoded)) < minPrintableRatio {
		return secret, SecretLiteral
	}
	return string(decoded), SecretBase64Decoded
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// CallbackSignature is the md5sig the gateway attaches to a notification.
func CallbackSignature(merchantID, orderID, amount, currency, statusCode, secret string) string {
	return md5Upper(merchantID + orderID + amount + currency + statusCode + md5Upper(secret))
}

// CheckoutHash signs a checkout request for the hosted payment page.
func CheckoutHash(merchantID, orderID, amount, currency, secret string) string {
	return md5Upper(merchantID + orderID + amount + currency + md5Upper(secret))
}
