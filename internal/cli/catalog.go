package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"coinfolio/internal/models"
)

type portfolioCmd struct {
	open Opener

	name     string
	currency string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "create or list portfolios" }
func (*portfolioCmd) Usage() string {
	return `portfolio [-name <name> [-currency <code>]]

  With -name, creates a portfolio valued in the given ISO 4217 currency
  (default USD). Without flags, lists every portfolio.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the portfolio to create")
	f.StringVar(&c.currency, "currency", "", "base currency")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		if c.name != "" {
			p, err := env.Catalog.CreatePortfolio(ctx, c.name, c.currency)
			if err != nil {
				return err
			}
			return printJSON(env.Out, p)
		}

		portfolios, err := env.Catalog.ListPortfolios(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCURRENCY")
		for _, p := range portfolios {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.BaseCurrency)
		}
		return w.Flush()
	})
}

type walletCmd struct {
	open Opener

	portfolio string
	name      string
	kind      string
}

func (*walletCmd) Name() string     { return "wallet" }
func (*walletCmd) Synopsis() string { return "create or list the wallets of a portfolio" }
func (*walletCmd) Usage() string {
	return `wallet -portfolio <id> [-name <name> [-kind <kind>]]

  With -name, creates a wallet of the given kind (exchange, hot, cold or
  bank; default exchange). Without -name, lists the portfolio's wallets.
`
}

func (c *walletCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id (required)")
	f.StringVar(&c.name, "name", "", "name of the wallet to create")
	f.StringVar(&c.kind, "kind", "", "wallet kind")
}

func (c *walletCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		if c.name != "" {
			wallet, err := env.Catalog.CreateWallet(ctx, c.portfolio, c.name, models.WalletKind(c.kind))
			if err != nil {
				return err
			}
			return printJSON(env.Out, wallet)
		}

		wallets, err := env.Catalog.ListWallets(ctx, c.portfolio)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND")
		for _, wl := range wallets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", wl.ID, wl.Name, wl.Kind)
		}
		return w.Flush()
	})
}

type assetCmd struct {
	open Opener

	symbol string
	name   string
	kind   string
}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "create or list catalog assets" }
func (*assetCmd) Usage() string {
	return `asset [-symbol <symbol> [-name <name>] [-kind <kind>]]

  With -symbol, adds an asset (crypto or fiat; default crypto).
  Symbols are unique and stored upper-case. Without -symbol, lists assets.
`
}

func (c *assetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol of the asset to create")
	f.StringVar(&c.name, "name", "", "display name")
	f.StringVar(&c.kind, "kind", "", "asset kind")
}

func (c *assetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.open, func(ctx context.Context, env *Env) error {
		if c.symbol != "" {
			asset, err := env.Catalog.CreateAsset(ctx, c.symbol, c.name, models.AssetKind(c.kind))
			if err != nil {
				return err
			}
			return printJSON(env.Out, asset)
		}

		assets, err := env.Catalog.ListAssets(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSYMBOL\tNAME\tKIND")
		for _, a := range assets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Symbol, a.Name, a.Kind)
		}
		return w.Flush()
	})
}
