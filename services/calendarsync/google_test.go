package calendarsync

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"syncslot/models"

	"github.com/stretchr/testify/assert"
)

func TestGoogleEventID(t *testing.T) {
	id := googleEventID("3F2504E0-4F89-11D3-9A0C-0305E82C3301")
	assert.Equal(t, "3f2504e04f8911d39a0c0305e82c3301", id)
	// Google accepts base32hex characters, 5 to 1024 of them.
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-v]+$`), id)
	assert.GreaterOrEqual(t, len(id), 5)
	assert.LessOrEqual(t, len(id), 1024)
}

func TestTokenConversion(t *testing.T) {
	in := &models.GoogleToken{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Expiry: time.Unix(1700000000, 0).UTC()}
	assert.Equal(t, in, fromOAuthToken(toOAuthToken(in)))
}

func TestAuthCodeURLRequestsOfflineAccess(t *testing.T) {
	g := NewGoogleClient("client", "secret", "http://localhost/cb")
	u := g.AuthCodeURL("state-1")
	assert.True(t, strings.HasPrefix(u, "https://accounts.google.com/"))
	assert.Contains(t, u, "access_type=offline")
	assert.Contains(t, u, "state=state-1")
}
