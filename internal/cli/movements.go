package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"coinfolio/internal/models"
	"coinfolio/internal/services"
)

type registerCmd struct {
	open Opener

	portfolio string
	wallet    string
	asset     string
	typ       string
	qty       string
	price     string
	fee       string
	at        string
	notes     string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register a movement in a wallet" }
func (*registerCmd) Usage() string {
	return `register -portfolio <id> -wallet <id> -asset <id> -type <type> -qty <quantity> [-price <price>] [-fee <quantity>] [-time <when>] [-notes <text>]

  Appends one movement and updates the holding of the asset in the wallet.
  - type: BUY, SELL, DEPOSIT, WITHDRAW, TRANSFER_IN, TRANSFER_OUT, FEE or ADJUSTMENT.
  - qty: strictly positive; fee is subtracted from the holding as well.
  - price: required for BUY and SELL.
  - time: unix milliseconds, RFC3339 or YYYY-MM-DD (default now).

  The command is rejected when it would leave the holding negative.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.wallet, "wallet", "", "wallet id (required)")
	f.StringVar(&c.asset, "asset", "", "asset id (required)")
	f.StringVar(&c.typ, "type", "", "movement type (required)")
	f.StringVar(&c.qty, "qty", "", "quantity (required)")
	f.StringVar(&c.price, "price", "", "unit price in the portfolio base currency")
	f.StringVar(&c.fee, "fee", "0", "fee quantity in the same asset")
	f.StringVar(&c.at, "time", "", "movement time")
	f.StringVar(&c.notes, "notes", "", "free text")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		qty, err := parseQty("qty", c.qty)
		if err != nil {
			return err
		}
		fee, err := parseQty("fee", c.fee)
		if err != nil {
			return err
		}
		price, err := parseOptionalQty("price", c.price)
		if err != nil {
			return err
		}
		ts, err := parseTime(c.at)
		if err != nil {
			return err
		}

		res, err := env.Ledger.RegisterMovement(ctx, services.RegisterMovementInput{
			PortfolioID: c.portfolio,
			WalletID:    c.wallet,
			AssetID:     c.asset,
			Type:        models.MovementType(strings.ToUpper(c.typ)),
			Quantity:    qty,
			Price:       price,
			FeeQuantity: fee,
			Timestamp:   ts,
			Notes:       c.notes,
		})
		if err != nil {
			return err
		}
		return printJSON(env.Out, res)
	})
}

type editCmd struct {
	open Opener

	typ   string
	qty   string
	price string
	fee   string
	at    string
	notes string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace the fields of a movement" }
func (*editCmd) Usage() string {
	return `edit [-type <type>] [-qty <quantity>] [-price <price>] [-fee <quantity>] [-time <when>] [-notes <text>] <movement-id>

  Rewrites a movement in place. Flags left unset keep the stored value;
  pass -price none to clear the price. The holding is recomputed from the
  old and new contribution and the edit is rejected if it would go negative.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "new movement type")
	f.StringVar(&c.qty, "qty", "", "new quantity")
	f.StringVar(&c.price, "price", "", "new unit price, or none")
	f.StringVar(&c.fee, "fee", "", "new fee quantity")
	f.StringVar(&c.at, "time", "", "new movement time")
	f.StringVar(&c.notes, "notes", "", "new notes")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(f.Output(), "edit takes exactly one movement id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		current, err := env.Ledger.GetMovement(ctx, id)
		if err != nil {
			return err
		}
		in := services.EditMovementInput{
			MovementID:  id,
			Type:        current.Type,
			Quantity:    current.Quantity,
			Price:       current.Price,
			FeeQuantity: current.FeeQuantity,
			Timestamp:   current.Timestamp,
			Notes:       current.Notes,
		}

		if set["type"] {
			in.Type = models.MovementType(strings.ToUpper(c.typ))
		}
		if set["qty"] {
			if in.Quantity, err = parseQty("qty", c.qty); err != nil {
				return err
			}
		}
		if set["price"] {
			if strings.EqualFold(c.price, "none") {
				in.Price = nil
			} else if in.Price, err = parseOptionalQty("price", c.price); err != nil {
				return err
			}
		}
		if set["fee"] {
			if in.FeeQuantity, err = parseQty("fee", c.fee); err != nil {
				return err
			}
		}
		if set["time"] {
			if in.Timestamp, err = parseTime(c.at); err != nil {
				return err
			}
		}
		if set["notes"] {
			in.Notes = c.notes
		}

		res, err := env.Ledger.EditMovement(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(env.Out, res)
	})
}

type deleteCmd struct {
	open Opener
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a movement and revert its effect" }
func (*deleteCmd) Usage() string {
	return `delete <movement-id>

  Removes a movement and subtracts its contribution from the holding.
  Deleting an inflow that was already spent is rejected.
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(f.Output(), "delete takes exactly one movement id")
		return subcommands.ExitUsageError
	}
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		res, err := env.Ledger.DeleteMovement(ctx, f.Arg(0))
		if err != nil {
			return err
		}
		return printJSON(env.Out, res)
	})
}

type transferCmd struct {
	open Opener

	portfolio string
	from      string
	to        string
	asset     string
	qty       string
	at        string
	notes     string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move an asset between two wallets" }
func (*transferCmd) Usage() string {
	return `transfer -portfolio <id> -from <wallet> -to <wallet> -asset <id> -qty <quantity> [-time <when>] [-notes <text>]

  Records a linked TRANSFER_OUT and TRANSFER_IN pair sharing one group id.
  Both wallets must belong to the portfolio and be distinct.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.from, "from", "", "source wallet id (required)")
	f.StringVar(&c.to, "to", "", "destination wallet id (required)")
	f.StringVar(&c.asset, "asset", "", "asset id (required)")
	f.StringVar(&c.qty, "qty", "", "quantity to move (required)")
	f.StringVar(&c.at, "time", "", "transfer time")
	f.StringVar(&c.notes, "notes", "", "free text")
}

func (c *transferCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		qty, err := parseQty("qty", c.qty)
		if err != nil {
			return err
		}
		ts, err := parseTime(c.at)
		if err != nil {
			return err
		}
		res, err := env.Ledger.MoveBetweenWallets(ctx, services.TransferInput{
			PortfolioID:  c.portfolio,
			FromWalletID: c.from,
			ToWalletID:   c.to,
			AssetID:      c.asset,
			Quantity:     qty,
			Timestamp:    ts,
			Notes:        c.notes,
		})
		if err != nil {
			return err
		}
		return printJSON(env.Out, res)
	})
}

type swapCmd struct {
	open Opener

	portfolio string
	wallet    string
	fromAsset string
	toAsset   string
	fromQty   string
	toQty     string
	at        string
	notes     string
}

func (*swapCmd) Name() string     { return "swap" }
func (*swapCmd) Synopsis() string { return "exchange one asset for another in a wallet" }
func (*swapCmd) Usage() string {
	return `swap -portfolio <id> -wallet <id> -from-asset <id> -to-asset <id> -from-qty <quantity> -to-qty <quantity> [-time <when>] [-notes <text>]

  Records a linked SELL of the source asset and BUY of the target asset.
  Each leg carries the price implied by the exchanged quantities.
`
}

func (c *swapCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.wallet, "wallet", "", "wallet id (required)")
	f.StringVar(&c.fromAsset, "from-asset", "", "asset given up (required)")
	f.StringVar(&c.toAsset, "to-asset", "", "asset received (required)")
	f.StringVar(&c.fromQty, "from-qty", "", "quantity given up (required)")
	f.StringVar(&c.toQty, "to-qty", "", "quantity received (required)")
	f.StringVar(&c.at, "time", "", "swap time")
	f.StringVar(&c.notes, "notes", "", "free text")
}

func (c *swapCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		fromQty, err := parseQty("from-qty", c.fromQty)
		if err != nil {
			return err
		}
		toQty, err := parseQty("to-qty", c.toQty)
		if err != nil {
			return err
		}
		ts, err := parseTime(c.at)
		if err != nil {
			return err
		}
		res, err := env.Ledger.SwapMovement(ctx, services.SwapInput{
			PortfolioID:  c.portfolio,
			WalletID:     c.wallet,
			FromAssetID:  c.fromAsset,
			ToAssetID:    c.toAsset,
			FromQuantity: fromQty,
			ToQuantity:   toQty,
			Timestamp:    ts,
			Notes:        c.notes,
		})
		if err != nil {
			return err
		}
		return printJSON(env.Out, res)
	})
}
