package registration

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

const (
	MsgMissingField       = "champ obligatoire manquant : %s"
	MsgInvalidEmail       = "adresse email invalide"
	MsgInvalidPhone       = "numéro de téléphone invalide (10 chiffres)"
	MsgConferenceNotFound = "conférence introuvable"
	MsgAlreadyRegistered  = "cette adresse email est déjà inscrite"
	MsgConferenceFull     = "cette conférence est complète"
	MsgServerFailure      = "erreur lors de l'inscription"
	MsgRegisteredNotified = "Inscription réussie, email envoyé !"
	MsgRegisteredNoEmail  = "Inscription réussie, mais l'email de confirmation n'a pas pu être envoyé."
)

// Normalize trims every field and lower-cases the email so that uniqueness
// does not depend on letter case.
func (in Input) Normalize() Input {
	return Input{
		Nom:          strings.TrimSpace(in.Nom),
		Prenom:       strings.TrimSpace(in.Prenom),
		Telephone:    strings.TrimSpace(in.Telephone),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		ConferenceID: strings.TrimSpace(in.ConferenceID),
		Motivation:   strings.TrimSpace(in.Motivation),
	}
}

// Validate runs the field checks in order and returns the first failure.
func (in Input) Validate(enforcePhone bool) *Error {
	required := []struct {
		name  string
		value string
	}{
		{"nom", in.Nom},
		{"prenom", in.Prenom},
		{"telephone", in.Telephone},
		{"email", in.Email},
		{"conferenceId", in.ConferenceID},
	}
	for _, f := range required {
		if f.value == "" {
			return validationError(fmt.Sprintf(MsgMissingField, f.name))
		}
	}

	if !ValidEmail(in.Email) {
		return validationError(MsgInvalidEmail)
	}
	if enforcePhone && !phonePattern.MatchString(in.Telephone) {
		return validationError(MsgInvalidPhone)
	}
	return nil
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
