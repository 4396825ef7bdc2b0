package intake

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

func TestExtractContactInlineFields(t *testing.T) {
	c := ExtractContact("Subject: Billing Error\nI was charged twice. Email: a@x.com Name: A")
	assert.Equal(t, Contact{Email: "a@x.com", Name: "A"}, c)
}

func TestExtractContactFromSamples(t *testing.T) {
	want := []Contact{
		{Email: "sarah.johnson@email.com", Name: "Sarah Johnson"},
		{Email: "mike.chen@techcorp.com", Name: "Mike Chen"},
		{Email: "emma.wilson@design.io", Name: "Emma Wilson"},
		{Email: "j.rodriguez@startup.com", Name: "James Rodriguez"},
		{Email: "david.park@enterprise.com", Name: "David Park"},
		{Email: "lisa.anderson@creative.co", Name: "Lisa Anderson"},
	}
	samples := Samples()
	require.Len(t, samples, len(want))
	for i, s := range samples {
		assert.Equal(t, want[i], ExtractContact(s.Content), s.Description)
	}
	assert.Equal(t, samples[0], DefaultSample())
}

func TestExtractContactMissingFields(t *testing.T) {
	assert.Equal(t, Contact{}, ExtractContact("My printer is on fire.\nname:\n"))
}

func TestExtractContactNonUTF8Input(t *testing.T) {
	assert.Equal(t, "Alice Smith", ExtractContact("\xe9 Name: Alice Smith").Name)
	assert.Equal(t, "Bob", ExtractContact("İİİ name: Bob").Name)
	assert.Equal(t, "Zoë", ExtractContact("caf\xe9\r\nNAME:\tZoë\r\n").Name)

	assert.NotPanics(t, func() {
		assert.Equal(t, Contact{}, ExtractContact("\xff\xff\xffname:"))
	})

	c := ExtractContact("name: J\xf6rg M\xfcller")
	assert.True(t, utf8.ValidString(c.Name))
	assert.Equal(t, "J\uFFFDrg M\uFFFDller", c.Name)
}

func TestExtractContactSkipsEmptyMarker(t *testing.T) {
	assert.Equal(t, "Later Name", ExtractContact("Name:\nsomething\nAccount name: Later Name").Name)
}

func TestReadInteractiveStopsAtSentinel(t *testing.T) {
	var out bytes.Buffer
	text, err := ReadInteractive(strings.NewReader("line one\nline two\nEND\nignored\n"), &out, "")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
	assert.Contains(t, out.String(), "END")
}

func TestReadInteractiveEOF(t *testing.T) {
	text, err := ReadInteractive(strings.NewReader("only line"), &bytes.Buffer{}, "DONE")
	require.NoError(t, err)
	assert.Equal(t, "only line", text)
}

func TestReadInteractiveEmpty(t *testing.T) {
	_, err := ReadInteractive(strings.NewReader("\n  \nEND\n"), &bytes.Buffer{}, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInputEmpty))

	_, err = ReadAll(strings.NewReader(" \n"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInputEmpty))
}
