package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"loyalty/database"
	"loyalty/models"
)

func seedAttribution(t *testing.T, referralSource string, commission float64, linked bool) (models.Client, models.Transaction, models.Ambassador) {
	t.Helper()

	amb := models.Ambassador{ChatID: 300}
	require.NoError(t, database.DB.Create(&amb).Error)
	require.NoError(t, database.DB.Create(&models.Partner{
		ChatID:               200,
		AmbassadorCommission: commission,
	}).Error)
	if linked {
		require.NoError(t, database.DB.Create(&models.AmbassadorPartnerLink{
			AmbassadorID:  amb.ID,
			PartnerChatID: 200,
		}).Error)
	}

	client := models.Client{ChatID: 100, Balance: 50, ReferralSource: referralSource}
	require.NoError(t, database.DB.Create(&client).Error)

	txn := models.Transaction{
		ClientChatID:  100,
		PartnerChatID: 200,
		TxnType:       models.TxnAccrual,
		Amount:        1000,
		EarnedPoints:  50,
	}
	require.NoError(t, database.DB.Create(&txn).Error)

	return client, txn, amb
}

func TestAttributeAmbassadorSplit(t *testing.T) {
	setupTestDB(t)
	client, txn, amb := seedAttribution(t, "amb_300", 0.05, true)

	require.NoError(t, AttributeAmbassador(txn.ID, client, 200, 1000))

	var earning models.AmbassadorEarning
	require.NoError(t, database.DB.Where("transaction_id = ?", txn.ID).First(&earning).Error)
	require.True(t, earning.GrossAmount.Equal(decimal.NewFromInt(50)), "gross: %s", earning.GrossAmount)
	require.True(t, earning.PlatformFee.Equal(decimal.NewFromInt(15)), "fee: %s", earning.PlatformFee)
	require.True(t, earning.AmbassadorAmount.Equal(decimal.NewFromInt(35)), "amount: %s", earning.AmbassadorAmount)

	var got models.Ambassador
	require.NoError(t, database.DB.First(&got, amb.ID).Error)
	require.True(t, got.PendingBalance.Equal(decimal.NewFromInt(35)), "pending: %s", got.PendingBalance)
	require.True(t, got.TotalEarnings.Equal(decimal.NewFromInt(35)), "total: %s", got.TotalEarnings)

	var patched models.Transaction
	require.NoError(t, database.DB.First(&patched, txn.ID).Error)
	require.NotNil(t, patched.AmbassadorID)
	require.Equal(t, amb.ID, *patched.AmbassadorID)
}

func TestAttributeAmbassadorGates(t *testing.T) {
	cases := []struct {
		name       string
		referral   string
		commission float64
		linked     bool
	}{
		{"no referral marker", "organic", 0.05, true},
		{"unresolvable marker", "amb_999", 0.05, true},
		{"no partner link", "amb_300", 0.05, false},
		{"zero commission", "amb_300", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setupTestDB(t)
			client, txn, amb := seedAttribution(t, tc.referral, tc.commission, tc.linked)

			require.NoError(t, AttributeAmbassador(txn.ID, client, 200, 1000))

			var earnings int64
			database.DB.Model(&models.AmbassadorEarning{}).Count(&earnings)
			require.Zero(t, earnings)

			var got models.Ambassador
			require.NoError(t, database.DB.First(&got, amb.ID).Error)
			require.True(t, got.PendingBalance.IsZero())

			var patched models.Transaction
			require.NoError(t, database.DB.First(&patched, txn.ID).Error)
			require.Nil(t, patched.AmbassadorID)
		})
	}
}

func TestDebitCashbackDepositGoesNegative(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&models.Partner{ChatID: 200, DepositBalance: 30}).Error)

	require.NoError(t, DebitCashbackDeposit(1, 200, 100, 50, 1000))

	var partner models.Partner
	require.NoError(t, database.DB.Where("chat_id = ?", 200).First(&partner).Error)
	require.Equal(t, int64(-20), partner.DepositBalance)
	require.Equal(t, int64(50), partner.TotalCashbackIssued)

	var entry models.CashbackLogEntry
	require.NoError(t, database.DB.Where("transaction_id = ?", 1).First(&entry).Error)
	require.Equal(t, int64(50), entry.CashbackPoints)
	require.Equal(t, float64(1000), entry.CheckAmount)
}
