package accountsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodels "github.com/xiaofeiTM233/FlowHub/internal/api/account/models"
)

func TestToPlatformAccount(t *testing.T) {
	account := accountmodels.Account{
		AID:      "bili-main",
		Platform: "bili",
		UID:      "12345",
		Auth:     map[string]string{"url": "http://onebot:5700", "token": "secret"},
		Cookies:  map[string]string{"SESSDATA": "xyz"},
		Stats:    map[string]interface{}{"follower": 100},
	}

	view := ToPlatformAccount(account)

	require.NotNil(t, view)
	assert.Equal(t, "bili-main", view.AID)
	assert.Equal(t, "bili", view.Platform)
	assert.Equal(t, "12345", view.UID)
	assert.Equal(t, "secret", view.Auth["token"])
	assert.Equal(t, "xyz", view.Cookies["SESSDATA"])
}

func TestToPlatformAccount_EmptyMaps(t *testing.T) {
	view := ToPlatformAccount(accountmodels.Account{AID: "x"})
	require.NotNil(t, view)
	assert.Nil(t, view.Auth)
	assert.Nil(t, view.Cookies)
}
