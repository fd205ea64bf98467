package utils

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "Óticas Vizz"

// Admin login accepts the current code and the ones right before and after
// it, enough for a phone clock a few seconds off.
var adminTOTPOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// GenerateTOTPSecret creates the admin 2FA secret and its otpauth:// URL for
// the store manager's authenticator app.
func GenerateTOTPSecret(account string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: account,
		Period:      adminTOTPOpts.Period,
		Digits:      adminTOTPOpts.Digits,
		Algorithm:   adminTOTPOpts.Algorithm,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// VerifyTOTP checks an admin login code against the current time.
func VerifyTOTP(secret, code string) bool {
	return VerifyTOTPAt(secret, code, time.Now())
}

// VerifyTOTPAt checks a code at a given instant. Spaces and dashes typed
// between the digit groups are ignored.
func VerifyTOTPAt(secret, code string, at time.Time) bool {
	code = strings.NewReplacer(" ", "", "-", "").Replace(code)
	if secret == "" || len(code) != adminTOTPOpts.Digits.Length() {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, at.UTC(), adminTOTPOpts)
	return err == nil && ok
}
