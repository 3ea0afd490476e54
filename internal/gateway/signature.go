package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PaymentSignature computes the hex-encoded HMAC-SHA256 of
// "<orderID>|<paymentID>" keyed with the gateway shared secret. This is the
// value Razorpay hands to the client after a successful payment.
func PaymentSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature reports whether signature matches the expected
// HMAC for the (orderID, paymentID) pair. The comparison is constant-time;
// this check is the only defense against a client fabricating a
// "payment succeeded" message without ever paying.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := PaymentSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookSignature computes the hex-encoded HMAC-SHA256 of a raw webhook
// body keyed with the webhook secret.
func WebhookSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature reports whether signature matches the expected
// HMAC for the raw webhook body.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	expected := WebhookSignature(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
