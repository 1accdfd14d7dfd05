package ton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loyalty/config"
	"loyalty/database"
	"loyalty/middlewares"
	"loyalty/models"
	"loyalty/providers/tonapi"
)

var (
	testWallet = "0:" + strings.Repeat("a", 64)
	testJetton = "0:" + strings.Repeat("b", 64)
	wrongAsset = "0:" + strings.Repeat("c", 64)
	wrongDest  = "0:" + strings.Repeat("d", 64)
)

const testSecret = "s3cret"

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	setupTestDB(t)
	Configure(config.Config{
		TonWebhookSecret: testSecret,
		PlatformWallet:   testWallet,
		USDTJettonMaster: testJetton,
		PointsPerUSDT:    100,
	}, nil)
	app := fiber.New()
	app.Post("/api/ton/webhook", middlewares.TonWebhookAuth(testSecret), Webhook)
	return app
}

func usdtTransfer(recipient, jettonAddr, comment, amount string) tonapi.Action {
	return tonapi.Action{
		Type:   "JettonTransfer",
		Status: "ok",
		JettonTransfer: &tonapi.JettonTransfer{
			Sender:    tonapi.Account{Address: wrongDest},
			Recipient: tonapi.Account{Address: recipient},
			Amount:    amount,
			Comment:   comment,
			Jetton: tonapi.JettonInfo{
				Address:  jettonAddr,
				Symbol:   "USDT",
				Decimals: 6,
			},
		},
	}
}

func deliver(t *testing.T, app *fiber.App, payload tonapi.WebhookPayload, token string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/ton/webhook", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWebhookRejectsBadToken(t *testing.T) {
	app := setupApp(t)

	resp := deliver(t, app, tonapi.WebhookPayload{}, "wrong")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = deliver(t, app, tonapi.WebhookPayload{}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookCreditsExactlyOnce(t *testing.T) {
	app := setupApp(t)
	require.NoError(t, database.DB.Create(&models.Partner{ChatID: 200, DepositBalance: 100}).Error)

	payload := tonapi.WebhookPayload{
		Event: &tonapi.Event{
			EventID: "evt-1",
			Actions: []tonapi.Action{
				// 100 USDT in 6-decimal units
				usdtTransfer(testWallet, testJetton, "200", "100000000"),
			},
		},
	}

	resp := deliver(t, app, payload, testSecret)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Duplicate delivery of the same event id.
	resp = deliver(t, app, payload, testSecret)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payments []models.OnChainPayment
	require.NoError(t, database.DB.Find(&payments).Error)
	require.Len(t, payments, 1)
	require.Equal(t, "evt-1", payments[0].TxHash)
	require.Equal(t, int64(10000), payments[0].CreditedPoints)
	require.Equal(t, float64(100), payments[0].Amount)
	require.Equal(t, "confirmed", payments[0].Status)

	var partner models.Partner
	require.NoError(t, database.DB.Where("chat_id = ?", 200).First(&partner).Error)
	require.Equal(t, int64(10100), partner.DepositBalance)
}

func TestWebhookFiltersWrongAssetAndRecipient(t *testing.T) {
	app := setupApp(t)
	require.NoError(t, database.DB.Create(&models.Partner{ChatID: 200}).Error)

	payload := tonapi.WebhookPayload{
		Event: &tonapi.Event{
			EventID: "evt-2",
			Actions: []tonapi.Action{
				usdtTransfer(testWallet, wrongAsset, "200", "100000000"),
				usdtTransfer(wrongDest, testJetton, "200", "100000000"),
			},
		},
	}

	resp := deliver(t, app, payload, testSecret)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.OnChainPayment{}).Count(&count)
	require.Zero(t, count)

	var partner models.Partner
	require.NoError(t, database.DB.Where("chat_id = ?", 200).First(&partner).Error)
	require.Zero(t, partner.DepositBalance)
}

func TestWebhookSkipsUnknownPartnerAndBadComment(t *testing.T) {
	app := setupApp(t)

	payload := tonapi.WebhookPayload{
		Event: &tonapi.Event{
			EventID: "evt-3",
			Actions: []tonapi.Action{
				usdtTransfer(testWallet, testJetton, "999", "100000000"),
				usdtTransfer(testWallet, testJetton, "", "100000000"),
				usdtTransfer(testWallet, testJetton, "not-a-number", "100000000"),
			},
		},
	}

	resp := deliver(t, app, payload, testSecret)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.OnChainPayment{}).Count(&count)
	require.Zero(t, count)
}

func TestWebhookOneActionFailureDoesNotAbortSiblings(t *testing.T) {
	app := setupApp(t)
	require.NoError(t, database.DB.Create(&models.Partner{ChatID: 200}).Error)

	payload := tonapi.WebhookPayload{
		Event: &tonapi.Event{
			EventID: "evt-4",
			Actions: []tonapi.Action{
				usdtTransfer(testWallet, testJetton, "999", "100000000"), // unattributable
				{Type: "TonTransfer", Status: "ok"},                     // not a jetton transfer
				usdtTransfer(testWallet, testJetton, "200", "5000000"),  // 5 USDT, valid
			},
		},
	}

	resp := deliver(t, app, payload, testSecret)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var partner models.Partner
	require.NoError(t, database.DB.Where("chat_id = ?", 200).First(&partner).Error)
	require.Equal(t, int64(500), partner.DepositBalance)
}
