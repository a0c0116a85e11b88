package navigation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsHome(t *testing.T) {
	var p Page
	assert.Equal(t, Home, p)
	assert.Equal(t, "home", p.String())
}

func TestParseKnownPages(t *testing.T) {
	for _, page := range All() {
		t.Run(page.String(), func(t *testing.T) {
			parsed, err := Parse(page.String())
			require.NoError(t, err)
			assert.Equal(t, page, parsed)
		})
	}

	parsed, err := Parse("  offers ")
	require.NoError(t, err)
	assert.Equal(t, Offers, parsed)
}

func TestParseRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"bogus", "", "Home", "LOGIN", "home;drop"} {
		_, err := Parse(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrUnknownPage), raw)
	}
}

func TestAllCoversClosedSet(t *testing.T) {
	assert.Equal(t, []Page{Home, Login, Menu, Services, Offers, Contacts}, All())
	assert.False(t, Page(len(All())).Valid())
}

func TestTitleAndHref(t *testing.T) {
	assert.Equal(t, "Contacts", Contacts.Title())
	assert.Equal(t, "?nav=services", Services.Href())
}

func TestNavbarItemsExcludeLogin(t *testing.T) {
	items := NavbarItems()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		assert.NotEqual(t, Login, item.Page)
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Home", "Menu", "Services", "Offers", "Contacts"}, labels)
}

func TestTextRoundTripThroughJSON(t *testing.T) {
	type payload struct {
		Page Page `json:"page"`
	}

	data, err := json.Marshal(payload{Page: Menu})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":"menu"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Menu, decoded.Page)

	err = json.Unmarshal([]byte(`{"page":"bogus"}`), &decoded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPage))

	_, err = json.Marshal(payload{Page: Page(42)})
	require.Error(t, err)
}
