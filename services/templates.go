package services

import (
	"bytes"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

const (
	inviteSubject  = "Invitation to lightwork!"
	welcomeSubject = " Welcome to LightWork! Meet Your New AI Assistant "
	resetSubject   = "Reset your LightWork password"
	teamSender     = "team@lightwork.blue"
)

var inviteText = texttemplate.Must(texttemplate.New("invite.txt").Parse(`Hello,

You have been invited to join LightWork, the leading home services marketplace. By joining us, you’ll gain access to a wide range of home improvement professionals and services.

Why Join Us?
Joining LightWork allows you to seamlessly find, book, and manage home services. Whether you are looking to renovate your home or handle routine maintenance, our platform makes it easy and convenient.

How to Get Started:
Simply click on the link below to register and start exploring the vast range of services we offer:

Join LightWork Now: {{.Link}}

If you have any questions or need assistance, don’t hesitate to get in touch with our support team.

Looking forward to welcoming you aboard!

Best regards,
The LightWork Team`))

var inviteHTML = htmltemplate.Must(htmltemplate.New("invite.html").Parse(`<html>
<body>
  <p>Hello,</p>

  <p>You have been invited to join LightWork, the leading home services marketplace. By joining us, you’ll gain access to a wide range of home improvement professionals and services.</p>

  <p><strong>Why Join Us?</strong><br>
  Joining LightWork allows you to seamlessly find, book, and manage home services. Whether you are looking to renovate your home or handle routine maintenance, our platform makes it easy and convenient.</p>

  <p><strong>How to Get Started:</strong><br>
  Simply click on the link below to register and start exploring the vast range of services we offer:</p>

  <p><a href="{{.Link}}" target="_blank">Join LightWork Now</a></p>

  <p>If you have any questions or need assistance, don’t hesitate to get in touch with our support team.</p>

  <p>Looking forward to welcoming you aboard!</p>

  <p>Best regards,<br>
  The LightWork Team</p>
</body>
</html>`))

var welcomeText = texttemplate.Must(texttemplate.New("welcome.txt").Parse(`Hello {{.FirstName}},

Thank you for completing the onboarding process! You are now set to enjoy the amazing opportunities LightWork brings.

Meet your new AI Assistant, designed to answer calls on behalf of you from your respective clients. Your AI Assistant's number is {{.Number}}.

To get started, just forward all calls from your business line to the given number and voila, you are ready to go!

We're excited to have you with us!

Best regards,
The LightWork Team`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome.html").Parse(`<html>
<body>
  <p>Hello {{.FirstName}},</p>

  <p>Thank you for completing the onboarding process! You are now set to enjoy the amazing opportunities LightWork brings.</p>

  <p><strong>Meet your new AI Assistant</strong>, designed to answer calls on behalf of you from your respective clients. Your AI Assistant's number is <strong>{{.Number}}</strong>.</p>

  <p><strong>To get started</strong>, just forward all calls from your business line to the given number and voila, you are ready to go!</p>

  <p>We're excited to have you with us!</p>

  <p>Best regards,<br>
  The LightWork Team</p>
</body>
</html>`))

var resetText = texttemplate.Must(texttemplate.New("reset.txt").Parse(`Hello,

We received a request to reset the password for your LightWork account.

Create a new password here: {{.Link}}

If you did not ask for this, you can safely ignore this email.

Best regards,
The LightWork Team`))

var resetHTML = htmltemplate.Must(htmltemplate.New("reset.html").Parse(`<html>
<body>
  <p>Hello,</p>

  <p>We received a request to reset the password for your LightWork account.</p>

  <p><a href="{{.Link}}">Create a new password</a></p>

  <p>If you did not ask for this, you can safely ignore this email.</p>

  <p>Best regards,<br>
  The LightWork Team</p>
</body>
</html>`))

type template interface {
	Execute(w io.Writer, data any) error
}

func render(t template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

type inviteData struct{ Link string }

type welcomeData struct {
	FirstName string
	Number    string
}

// InviteEmail builds the invitation for link.
func InviteEmail(to, link string) models.EmailMessage {
	data := inviteData{Link: link}
	return models.EmailMessage{
		To:      to,
		Subject: inviteSubject,
		Text:    render(inviteText, data),
		HTML:    render(inviteHTML, data),
		From:    teamSender,
	}
}

// WelcomeEmail announces the assistant number to a newly onboarded user.
func WelcomeEmail(to, firstName, number string) models.EmailMessage {
	data := welcomeData{FirstName: firstName, Number: number}
	return models.EmailMessage{
		To:      to,
		Subject: welcomeSubject,
		Text:    render(welcomeText, data),
		HTML:    render(welcomeHTML, data),
	}
}

// ResetPasswordEmail carries the create-new-password link.
func ResetPasswordEmail(to, link string) models.EmailMessage {
	data := inviteData{Link: link}
	return models.EmailMessage{
		To:      to,
		Subject: resetSubject,
		Text:    render(resetText, data),
		HTML:    render(resetHTML, data),
		From:    teamSender,
	}
}
