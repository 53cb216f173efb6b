package email

import "fmt"

// BookingConfirmation builds the confirmation message for a studio booking.
func BookingConfirmation(to, name, studio, date, timeSlot string, durationHours float64) *Message {
	subject := fmt.Sprintf("Your IMC studio booking for %s is confirmed", date)
	text := fmt.Sprintf(
		"Hello %s,\n\nYour studio booking is confirmed.\n\n"+
			"Studio: %s\nDate: %s\nStart: %s\nDuration: %.1f hours\n\n"+
			"Thank you for booking with IMC.",
		name, studio, date, timeSlot, durationHours,
	)
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your studio booking is confirmed.</p>"+
			"<ul><li>Studio: %s</li><li>Date: %s</li><li>Start: %s</li>"+
			"<li>Duration: %.1f hours</li></ul><p>Thank you for booking with IMC.</p>",
		name, studio, date, timeSlot, durationHours,
	)
	return &Message{To: to, ToName: name, Subject: subject, Text: text, HTML: html}
}

// BookingReminder builds the day-before reminder for a studio booking.
func BookingReminder(to, name, studio, date, timeSlot string) *Message {
	subject := fmt.Sprintf("Reminder: studio session on %s at %s", date, timeSlot)
	text := fmt.Sprintf(
		"Hello %s,\n\nA reminder that you have a session at %s on %s starting at %s.\n\n"+
			"See you there!\nIMC",
		name, studio, date, timeSlot,
	)
	return &Message{To: to, ToName: name, Subject: subject, Text: text, HTML: "<p>" + text + "</p>"}
}

// PasswordReset builds the password reset message.
func PasswordReset(to, name, resetURL string) *Message {
	text := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your IMC account.\n"+
			"Open this link to choose a new password:\n\n%s\n\n"+
			"If you did not request this, ignore this email.",
		name, resetURL,
	)
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>A password reset was requested for your IMC account.</p>"+
			"<p><a href=%q>Choose a new password</a></p>"+
			"<p>If you did not request this, ignore this email.</p>",
		name, resetURL,
	)
	return &Message{To: to, ToName: name, Subject: "Reset your IMC password", Text: text, HTML: html}
}
