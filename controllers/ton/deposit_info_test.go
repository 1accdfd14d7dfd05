package ton

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"loyalty/database"
	"loyalty/models"
)

func TestDepositInfo(t *testing.T) {
	app := setupApp(t)
	app.Get("/api/ton/deposit-info", DepositInfo)

	require.NoError(t, database.DB.Create(&models.Partner{ChatID: 200}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/ton/deposit-info?partner_chat_id=200", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data := out["data"].(map[string]any)
	require.Equal(t, testWallet, data["wallet_address_raw"])
	require.Equal(t, testJetton, data["jetton_master"])
	require.Equal(t, "200", data["comment"])
	require.EqualValues(t, 100, data["points_per_usdt"])
	require.NotEmpty(t, data["wallet_address"])
}

func TestDepositInfoUnknownPartner(t *testing.T) {
	app := setupApp(t)
	app.Get("/api/ton/deposit-info", DepositInfo)

	req := httptest.NewRequest(http.MethodGet, "/api/ton/deposit-info?partner_chat_id=999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
