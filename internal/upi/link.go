// Package upi builds payment-app deep links. A link is a one-way intent:
// no callback exists from the payment app, so dispatching a link proves
// nothing. The ledger learns about the payment only through the member's
// explicit claim afterwards.
package upi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// App selects which payment app the link targets.
type App string

const (
	AppGPay    App = "gpay"
	AppPhonePe App = "phonepe"
	AppPaytm   App = "paytm"
)

// schemes maps each supported app to its URI prefix.
var schemes = map[App]string{
	AppGPay:    "tez://upi/pay",
	AppPhonePe: "phonepe://pay",
	AppPaytm:   "paytmmp://pay",
}

// BuildPaymentLink assembles a deep link for the given app. All parameters
// are percent-encoded. An unrecognized app is an error, never a silent
// fallback to some default scheme.
func BuildPaymentLink(accountID, displayName string, amount int64, note string, app App) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("%w: payment account not configured", models.ErrValidation)
	}
	scheme, ok := schemes[app]
	if !ok {
		return "", fmt.Errorf("%w: unsupported payment app %q", models.ErrValidation, app)
	}

	params := url.Values{}
	params.Set("pa", accountID)
	params.Set("pn", displayName)
	params.Set("am", strconv.FormatInt(amount, 10))
	params.Set("cu", "INR")
	params.Set("tn", note)

	return scheme + "?" + params.Encode(), nil
}
