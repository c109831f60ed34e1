package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const confirmationSubject = "Confirmation d'inscription"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <p style="font-size: 16px; line-height: 1.6;">Bonjour {{.Prenom}} {{.Nom}},</p>

  <p style="font-size: 16px; line-height: 1.6;">Nous sommes ravis de vous accueillir à la <strong>{{.ConferenceTitle}}</strong> le <strong>{{.Date}}</strong> !</p>
{{if .Motivation}}
  <p style="font-size: 16px; line-height: 1.6;">Votre motivation : <em>{{.Motivation}}</em></p>
{{end}}
  <p style="font-size: 16px; line-height: 1.6;">Pour faciliter votre entrée, veuillez présenter ce QR Code à l'accueil. Il servira également d'accès à votre badge et aux différentes sessions.</p>

  <div style="text-align: center; margin: 25px 0;">
    <img src="cid:{{.ImageName}}" alt="QR Code d'accès" style="width:200px; height:200px; border: 1px solid #eee; padding: 10px; background: white;" />
  </div>

  <p style="font-size: 16px; line-height: 1.6;">Nous vous souhaitons une excellente conférence et des échanges enrichissants !</p>

  <p style="font-size: 16px; line-height: 1.6; margin-top: 30px;">
    Cordialement,<br>
    <strong>L'équipe d'organisation</strong><br>
    <em style="color: #4e73df;">{{.SenderName}}</em><br>
    <a href="mailto:{{.SenderAddress}}">{{.SenderAddress}}</a>
  </p>
</div>
`))

type confirmationView struct {
	Nom             string
	Prenom          string
	ConferenceTitle string
	Date            string
	Motivation      string
	ImageName       string
	SenderName      string
	SenderAddress   string
}

func renderConfirmation(c Confirmation, senderName, senderAddress string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, confirmationView{
		Nom:             c.Nom,
		Prenom:          c.Prenom,
		ConferenceTitle: c.ConferenceTitle,
		Date:            FormatDateFR(c.ConferenceDate),
		Motivation:      c.Motivation,
		ImageName:       qrImageName,
		SenderName:      senderName,
		SenderAddress:   senderAddress,
	})
	if err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

func renderConfirmationText(c Confirmation, senderName, senderAddress string) string {
	text := fmt.Sprintf("Bonjour %s %s,\n\nVotre inscription à la %s le %s est confirmée.\n",
		c.Prenom, c.Nom, c.ConferenceTitle, FormatDateFR(c.ConferenceDate))
	if c.Motivation != "" {
		text += fmt.Sprintf("Votre motivation : %s\n", c.Motivation)
	}
	text += fmt.Sprintf("\nPrésentez le QR Code joint à l'accueil.\n\nCordialement,\nL'équipe d'organisation\n%s <%s>\n", senderName, senderAddress)
	return text
}

var (
	frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frenchMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatDateFR formats a date as "lundi 14 avril 2025", in UTC.
func FormatDateFR(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %d %s %d", frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year())
}
