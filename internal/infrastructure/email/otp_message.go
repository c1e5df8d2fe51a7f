package email

import "fmt"

// NewOTPMessage builds the login code email for the given recipient.
// The plaintext code appears only in the message body.
func NewOTPMessage(to, code string, ttlMinutes int) Message {
	return Message{
		To:       to,
		Subject:  "Your login OTP",
		TextBody: fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, ttlMinutes),
		HTMLBody: fmt.Sprintf(
			"<p>Your OTP is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
			code, ttlMinutes,
		),
	}
}
