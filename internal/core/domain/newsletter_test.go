package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Reader@Example.com":          "reader@example.com",
		"  reader@example.com ":       "reader@example.com",
		"Reader <reader@example.com>": "",
		"not-an-email":                "",
		"":                            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeEmail(in), "NormalizeEmail(%q)", in)
	}
}

func TestNewsletterSubscription_Active(t *testing.T) {
	sub := &NewsletterSubscription{AcceptedMarketing: true}
	assert.False(t, sub.Active(), "unconfirmed")

	sub.Confirmed = true
	assert.True(t, sub.Active())

	sub.AcceptedMarketing = false
	assert.False(t, sub.Active(), "withdrawn consent")
}

func TestSocialLinks_Trimmed(t *testing.T) {
	got := SocialLinks{GitHub: "  octocat ", Twitch: "\tstreamer\n"}.Trimmed()
	assert.Equal(t, SocialLinks{GitHub: "octocat", Twitch: "streamer"}, got)
}
