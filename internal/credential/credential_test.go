package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerate_RoundTrip(t *testing.T) {
	gen := NewGenerator()

	cred, err := gen.Generate("Koffi Ama", "0123456789", "ama@example.com", "Conference Carrefour Etudiant - Avril 2025 (Session 1)")
	require.NoError(t, err)

	assert.Equal(t, "Koffi Ama | 0123456789 | ama@example.com | Conference Carrefour Etudiant - Avril 2025 (Session 1)", cred.Payload)
	assert.True(t, strings.HasPrefix(cred.DataURL(), "data:image/png;base64,"))

	decoded, err := Decode(cred.PNG)
	require.NoError(t, err)
	assert.Equal(t, cred.Payload, decoded)

	decoded, err = DecodeDataURL(cred.DataURL())
	require.NoError(t, err)
	assert.Equal(t, cred.Payload, decoded)
}

func TestGenerate_RoundTripAccentedTitles(t *testing.T) {
	gen := NewGenerator()

	names := []string{"Koffi Ama", "Kouassi Jean-Baptiste", "N'Guessan Aya"}
	emails := []string{"f@x.fr", "ama@example.com", "jean.baptiste@univ-abidjan.ci"}
	titles := []string{
		"Conférence Carrefour Étudiant - Avril 2025 (Session 1)",
		"Conférence Carrefour Étudiant - Avril 2025 (Session 2)",
		"Orientation et études à l'étranger",
	}

	for _, name := range names {
		for _, email := range emails {
			for _, title := range titles {
				cred, err := gen.Generate(name, "0123456789", email, title)
				require.NoError(t, err)

				decoded, err := Decode(cred.PNG)
				require.NoError(t, err, cred.Payload)
				assert.Equal(t, cred.Payload, decoded)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := NewGenerator()

	a, err := gen.Generate("Koffi Ama", "ama@example.com", "C1")
	require.NoError(t, err)
	b, err := gen.Generate("Koffi Ama", "ama@example.com", "C1")
	require.NoError(t, err)

	assert.Equal(t, a.Payload, b.Payload)
	assert.Equal(t, a.PNG, b.PNG)
}

func TestGenerate_Empty(t *testing.T) {
	_, err := NewGenerator().Generate("", " ")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	_, err := DecodeDataURL("https://example.com/qr.png")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}

// TestGenerate_RoundTripProperty checks that any identity decodes back to the
// exact joined payload.
func TestGenerate_RoundTripProperty(t *testing.T) {
	gen := NewGenerator()

	rapid.Check(t, func(rt *rapid.T) {
		nom := rapid.StringMatching(`[A-Z][a-z]{1,12}`).Draw(rt, "nom")
		prenom := rapid.StringMatching(`[A-Z][a-z]{1,12}`).Draw(rt, "prenom")
		phone := rapid.StringMatching(`[0-9]{10}`).Draw(rt, "phone")
		email := rapid.StringMatching(`[a-z]{1,10}@[a-z]{2,8}\.(com|fr|org)`).Draw(rt, "email")
		title := rapid.StringMatching(`[A-Za-z ]{1,40}`).Draw(rt, "title")

		cred, err := gen.Generate(nom+" "+prenom, phone, email, title)
		if err != nil {
			rt.Fatalf("generate: %v", err)
		}

		decoded, err := Decode(cred.PNG)
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if decoded != cred.Payload {
			rt.Fatalf("expected %q, got %q", cred.Payload, decoded)
		}
	})
}
