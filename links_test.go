package icslinks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	links, err := meeting().All()
	require.NoError(t, err)

	clients := make([]Provider, 0, len(links))
	for _, l := range links {
		clients = append(clients, l.Client)
		assert.True(t, strings.HasPrefix(l.URL, l.Client.BaseURL()), l.URL)
	}
	assert.Equal(t, []Provider{
		ProviderOutlook, ProviderOutlookMobile, ProviderOffice, ProviderOfficeMobile,
		ProviderGoogle, ProviderAOL, ProviderYahoo,
	}, clients)

	office, ok := links.Get(ProviderOffice)
	require.True(t, ok)
	assert.Equal(t, "Office 365", office.Label)
	assert.True(t, strings.HasPrefix(office.URL, "https://outlook.office.com/calendar/0/action/compose?allday=false&body=Meeting"))
}

func TestSubset(t *testing.T) {
	links, err := meeting().Subset(ProviderYahoo, ProviderGoogle, ProviderYahoo)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, ProviderGoogle, links[0].Client)
	assert.Equal(t, ProviderYahoo, links[1].Client)

	_, ok := links.Get(ProviderOutlook)
	assert.False(t, ok)

	empty, err := meeting().Subset()
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = meeting().Subset(ProviderGoogle, Provider("icloud"))
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAllInvalidDate(t *testing.T) {
	_, err := New("tomorrow", "2023-08-15").All()
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestLinkSetJSON(t *testing.T) {
	links, err := meeting().SetLabels(map[Provider]string{ProviderGoogle: "My Google"}).All()
	require.NoError(t, err)

	data, err := links.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "&body=Meeting")

	last := -1
	for _, p := range Providers() {
		i := strings.Index(string(data), `"`+string(p)+`":`)
		require.Greater(t, i, last, p)
		last = i
	}

	var decoded map[Provider]Link
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Link{Client: ProviderGoogle, Label: "My Google", URL: links[4].URL}, decoded[ProviderGoogle])
}

func TestURLSetJSON(t *testing.T) {
	links, err := meeting().Subset(ProviderGoogle, ProviderAOL)
	require.NoError(t, err)

	urls := links.URLs()
	google, _ := meeting().URL(ProviderGoogle)
	aol, _ := meeting().URL(ProviderAOL)
	assert.Equal(t, map[Provider]string{ProviderGoogle: google, ProviderAOL: aol}, urls.Map())

	data, err := json.Marshal(urls)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]string{"google": google, "aol": aol}, decoded)
	assert.Less(t, strings.Index(string(data), `"google"`), strings.Index(string(data), `"aol"`))
}
