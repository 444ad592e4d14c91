package services

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var emailTemplateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(emailTemplateFS, "templates/*.html"))

type loginEmailData struct {
	Name string
	IP   string
	Date string
}

type passwordResetEmailData struct {
	Name string
	Code string
}

type paymentEmailData struct {
	Name          string
	OrderID       string
	Amount        string
	PaymentMethod string
	Date          string
}

func renderEmailTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func emailDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
