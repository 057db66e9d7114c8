package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
	"coinfolio/internal/services"
)

type holdingsCmd struct {
	open Opener

	portfolio string
	wallet    string
	json      bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the holdings of a portfolio" }
func (*holdingsCmd) Usage() string {
	return `holdings -portfolio <id> [-wallet <id>] [-json]

  Lists the current quantity of every asset held, per wallet.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.wallet, "wallet", "", "restrict to one wallet")
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		var wallet *string
		if c.wallet != "" {
			wallet = &c.wallet
		}
		holdings, err := env.Ledger.ListHoldings(ctx, c.portfolio, wallet)
		if err != nil {
			return err
		}
		if c.json {
			return printJSON(env.Out, holdings)
		}

		w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WALLET\tASSET\tQUANTITY")
		for _, h := range holdings {
			fmt.Fprintf(w, "%s\t%s\t%s\n", h.WalletID, h.AssetID, h.Quantity.String())
		}
		return w.Flush()
	})
}

type movementsCmd struct {
	open Opener

	portfolio string
	wallet    string
	asset     string
	typ       string
	group     string
	page      int
	size      int
	json      bool
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "list the movements of a portfolio" }
func (*movementsCmd) Usage() string {
	return `movements -portfolio <id> [-wallet <id>] [-asset <id>] [-type <type>] [-group <id>] [-page n] [-size n] [-json]

  Lists movements newest first, one page at a time.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.wallet, "wallet", "", "filter by wallet")
	f.StringVar(&c.asset, "asset", "", "filter by asset")
	f.StringVar(&c.typ, "type", "", "filter by movement type")
	f.StringVar(&c.group, "group", "", "filter by transfer or swap group")
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.size, "size", pagination.DefaultPageSize, "page size")
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
}

func (c *movementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		var filter services.MovementFilter
		if c.wallet != "" {
			filter.WalletID = &c.wallet
		}
		if c.asset != "" {
			filter.AssetID = &c.asset
		}
		if c.group != "" {
			filter.GroupID = &c.group
		}
		if c.typ != "" {
			t := models.MovementType(strings.ToUpper(c.typ))
			filter.Type = &t
		}

		page, err := env.Ledger.ListMovements(ctx, c.portfolio, filter, pagination.PageRequest{Page: c.page, PageSize: c.size})
		if err != nil {
			return err
		}
		if c.json {
			return printJSON(env.Out, page)
		}

		w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tTYPE\tWALLET\tASSET\tQUANTITY\tPRICE\tFEE")
		for _, m := range page.Data {
			price := "-"
			if m.Price != nil {
				price = m.Price.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339), m.Type,
				m.WalletID, m.AssetID, m.Quantity.String(), price, m.FeeQuantity.String())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "page %d/%d, %d movements\n", page.Page, page.TotalPages, page.TotalItems)
		return nil
	})
}
