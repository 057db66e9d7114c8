// Package cli implements the folio command line over the ledger services.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"coinfolio/internal/config"
	"coinfolio/internal/database"
	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/repository"
	"coinfolio/internal/services"
)

// Env is what every command needs: the services and where to print.
type Env struct {
	Ledger  services.LedgerServicer
	Catalog services.CatalogServicer
	Out     io.Writer
	Err     io.Writer
}

// Opener builds an Env on demand and returns a function releasing it.
type Opener func() (*Env, func(), error)

// OpenDefault opens the database described by the environment configuration.
func OpenDefault() (*Env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := mgr.Migrate(); err != nil {
		_ = mgr.Close()
		return nil, nil, err
	}

	store := repository.NewGormStore(mgr.DB())
	audit := services.NewAuditService(store)
	env := &Env{
		Ledger:  services.NewLedgerService(store, store, audit),
		Catalog: services.NewCatalogService(store),
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	return env, func() { _ = mgr.Close() }, nil
}

// Commands returns every folio subcommand bound to open.
func Commands(open Opener) []subcommands.Command {
	return []subcommands.Command{
		&registerCmd{open: open},
		&editCmd{open: open},
		&deleteCmd{open: open},
		&transferCmd{open: open},
		&swapCmd{open: open},
		&holdingsCmd{open: open},
		&movementsCmd{open: open},
		&portfolioCmd{open: open},
		&walletCmd{open: open},
		&assetCmd{open: open},
	}
}

// run opens the environment, tags the context as a CLI call and reports errors.
func run(ctx context.Context, open Opener, fn func(ctx context.Context, env *Env) error) subcommands.ExitStatus {
	env, closeFn, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := fn(services.WithSource(ctx, "cli"), env); err != nil {
		printError(env.Err, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printError(w io.Writer, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error %s: %s\n", appErr.Code, appErr.Message)

	keys := make([]string, 0, len(appErr.Details))
	for k := range appErr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, appErr.Details[k])
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usageErr(format string, args ...interface{}) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func parseQty(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, usageErr("-%s is required", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, usageErr("invalid -%s %q", name, s)
	}
	return d, nil
}

func parseOptionalQty(name, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseQty(name, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseTime accepts unix milliseconds, RFC3339 or YYYY-MM-DD; empty means now.
func parseTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UnixMilli(), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, usageErr("invalid -time %q: use unix ms, RFC3339 or YYYY-MM-DD", s)
}
