package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coinfolio/internal/logger"
	"coinfolio/internal/models"
	"coinfolio/internal/repository"
	"coinfolio/internal/services"
	"coinfolio/internal/testutil"
)

func init() {
	logger.Init("test")
}

type harness struct {
	db        *gorm.DB
	env       *Env
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	portfolio *models.Portfolio
	wallet    *models.Wallet
	asset     *models.Asset
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := repository.NewGormStore(db)
	audit := services.NewAuditService(store)
	h := &harness{db: db, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.env = &Env{
		Ledger:  services.NewLedgerService(store, store, audit),
		Catalog: services.NewCatalogService(store),
		Out:     h.out,
		Err:     h.errOut,
	}
	h.portfolio = testutil.CreateTestPortfolio(t, db)
	h.wallet = testutil.CreateTestWallet(t, db, h.portfolio.ID)
	h.asset = testutil.CreateTestAsset(t, db, "BTC")
	return h
}

// exec runs one folio command line against the harness database.
func (h *harness) exec(args ...string) subcommands.ExitStatus {
	h.out.Reset()
	h.errOut.Reset()

	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	cdr := subcommands.NewCommander(fs, "folio")
	open := func() (*Env, func(), error) { return h.env, func() {}, nil }
	for _, c := range Commands(open) {
		cdr.Register(c, "")
	}
	if err := fs.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return cdr.Execute(context.Background())
}

func (h *harness) decode(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &out), h.out.String())
	return out
}

func TestRegisterCommand(t *testing.T) {
	h := newHarness(t)

	status := h.exec("register", "-portfolio", h.portfolio.ID, "-wallet", h.wallet.ID, "-asset", h.asset.ID,
		"-type", "deposit", "-qty", "2.5", "-time", "2024-01-02")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())

	res := h.decode(t)
	assert.Equal(t, "2.5", res["new_holding_quantity"])
	assert.NotEmpty(t, res["movement_id"])
	testutil.AssertDecimal(t, "2.5", testutil.HoldingQuantity(t, h.db, h.wallet.ID, h.asset.ID), "holding")

	var logs []models.AuditLog
	require.NoError(t, h.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "cli", logs[0].Source)
}

func TestRegisterCommand_Rejected(t *testing.T) {
	h := newHarness(t)

	status := h.exec("register", "-portfolio", h.portfolio.ID, "-wallet", h.wallet.ID, "-asset", h.asset.ID,
		"-type", "WITHDRAW", "-qty", "1")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, h.errOut.String(), "INSUFFICIENT_HOLDINGS")
	assert.Zero(t, testutil.CountMovements(t, h.db, h.wallet.ID))
}

func TestRegisterCommand_BadQuantity(t *testing.T) {
	h := newHarness(t)

	status := h.exec("register", "-portfolio", h.portfolio.ID, "-wallet", h.wallet.ID, "-asset", h.asset.ID,
		"-type", "DEPOSIT", "-qty", "lots")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, h.errOut.String(), "INVALID_INPUT")
}

func TestEditAndDeleteCommands(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.exec("register", "-portfolio", h.portfolio.ID,
		"-wallet", h.wallet.ID, "-asset", h.asset.ID, "-type", "BUY", "-qty", "3", "-price", "100"))
	id, _ := h.decode(t)["movement_id"].(string)
	require.NotEmpty(t, id)

	t.Run("edit keeps unset fields", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, h.exec("edit", "-qty", "5", id), h.errOut.String())
		assert.Equal(t, "5", h.decode(t)["new_holding_quantity"])

		var m models.Movement
		require.NoError(t, h.db.First(&m, "id = ?", id).Error)
		assert.Equal(t, models.MovementBuy, m.Type)
		require.NotNil(t, m.Price)
		testutil.AssertDecimal(t, "100", *m.Price, "price")
	})

	t.Run("edit needs an id", func(t *testing.T) {
		assert.Equal(t, subcommands.ExitUsageError, h.exec("edit", "-qty", "5"))
	})

	t.Run("delete reverts holding", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, h.exec("delete", id), h.errOut.String())
		assert.Equal(t, "0", h.decode(t)["new_holding_quantity"])
		assert.Zero(t, testutil.CountMovements(t, h.db, h.wallet.ID))
	})

	t.Run("delete unknown movement", func(t *testing.T) {
		assert.Equal(t, subcommands.ExitFailure, h.exec("delete", id))
		assert.Contains(t, h.errOut.String(), "MOVEMENT_NOT_FOUND")
	})
}

func TestTransferAndSwapCommands(t *testing.T) {
	h := newHarness(t)
	cold := testutil.CreateTestWallet(t, h.db, h.portfolio.ID)
	eth := testutil.CreateTestAsset(t, h.db, "ETH")
	testutil.SeedHolding(t, h.db, h.portfolio.ID, h.wallet.ID, h.asset.ID, "10")

	status := h.exec("transfer", "-portfolio", h.portfolio.ID, "-from", h.wallet.ID, "-to", cold.ID,
		"-asset", h.asset.ID, "-qty", "4")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())
	res := h.decode(t)
	assert.Equal(t, "6", res["new_from_holding_quantity"])
	assert.Equal(t, "4", res["new_to_holding_quantity"])

	status = h.exec("swap", "-portfolio", h.portfolio.ID, "-wallet", cold.ID,
		"-from-asset", h.asset.ID, "-to-asset", eth.ID, "-from-qty", "1", "-to-qty", "16")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())
	res = h.decode(t)
	assert.Equal(t, "3", res["new_from_holding_quantity"])
	assert.Equal(t, "16", res["new_to_holding_quantity"])
	assert.NotEmpty(t, res["group_id"])
}

func TestQueryCommands(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.exec("register", "-portfolio", h.portfolio.ID,
		"-wallet", h.wallet.ID, "-asset", h.asset.ID, "-type", "DEPOSIT", "-qty", "7"))

	t.Run("holdings table", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, h.exec("holdings", "-portfolio", h.portfolio.ID))
		assert.Contains(t, h.out.String(), "QUANTITY")
		assert.Contains(t, h.out.String(), h.asset.ID)
	})

	t.Run("movements json", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, h.exec("movements", "-portfolio", h.portfolio.ID, "-json"))
		page := h.decode(t)
		assert.EqualValues(t, 1, page["total_items"])
	})

	t.Run("movements bad type", func(t *testing.T) {
		assert.Equal(t, subcommands.ExitFailure, h.exec("movements", "-portfolio", h.portfolio.ID, "-type", "GIFT"))
	})
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.exec("portfolio", "-name", "Savings", "-currency", "eur"), h.errOut.String())
	p := h.decode(t)
	pid, _ := p["id"].(string)
	require.NotEmpty(t, pid)

	require.Equal(t, subcommands.ExitSuccess, h.exec("wallet", "-portfolio", pid, "-name", "Ledger", "-kind", "cold"), h.errOut.String())
	assert.Equal(t, "cold", h.decode(t)["kind"])

	require.Equal(t, subcommands.ExitSuccess, h.exec("wallet", "-portfolio", pid))
	assert.Contains(t, h.out.String(), "Ledger")

	require.Equal(t, subcommands.ExitSuccess, h.exec("asset", "-symbol", "sol", "-name", "Solana"), h.errOut.String())
	assert.Equal(t, "SOL", h.decode(t)["symbol"])

	assert.Equal(t, subcommands.ExitFailure, h.exec("asset", "-symbol", "SOL"))
	assert.Contains(t, h.errOut.String(), "DUPLICATE_ASSET")
}

func TestParseTime(t *testing.T) {
	ms, err := parseTime("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ms)

	ms, err = parseTime("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	_, err = parseTime("soon")
	assert.Error(t, err)
}
