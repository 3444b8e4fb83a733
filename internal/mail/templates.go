package mail

import "fmt"

// OTPBody renders the verification email.
func OTPBody(name, code string, ttlMinutes int) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your Wallet Tally verification code is:</p>
<h2>%s</h2>
<p>It expires in %d minutes. If you didn't sign up, ignore this email.</p>`,
		name, code, ttlMinutes,
	)
}

// ReportBody renders the email that carries a monthly PDF report.
func ReportBody(name, month string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Attached is your Wallet Tally report for %s.</p>`,
		name, month,
	)
}
