package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rocketshoes/internal/catalog"
	"rocketshoes/internal/config"
	"rocketshoes/internal/domain"
	"rocketshoes/internal/notify"
	"rocketshoes/internal/repository/kv"
	"rocketshoes/internal/service/cart"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitStartup = 3
)

var errUsage = errors.New("invalid arguments")

// run executes one cart command and returns the process exit code.
func run(ctx context.Context, cfg config.Config, lg *zap.Logger, store kv.Repository, args []string, stdout, stderr io.Writer) int {
	cmd, err := parseCommand(args)
	if err != nil {
		usage(stderr)
		return exitUsage
	}

	client, err := catalog.New(cfg.CatalogURL, cfg.CatalogTimeout, catalog.WithLogger(lg))
	if err != nil {
		fmt.Fprintf(stderr, "catalog: %v\n", err)
		return exitStartup
	}
	svc, err := cart.New(ctx, store, client, cart.WithLogger(lg))
	if err != nil {
		fmt.Fprintf(stderr, "load cart: %v\n", err)
		return exitStartup
	}

	reporter := notify.NewReporter(notify.Multi{notify.NewWriterSink(stderr), notify.NewLogSink(lg)})
	code := exitOK
	if err := reporter.Report(cmd.apply(ctx, svc)); err != nil {
		code = exitFailed
	}
	printCart(stdout, svc.Cart())
	return code
}

type command struct {
	name      string
	productID int64
	amount    int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "list"}, nil
	}
	cmd := command{name: strings.ToLower(args[0])}
	want := map[string]int{"list": 1, "add": 2, "remove": 2, "update": 3}
	n, ok := want[cmd.name]
	if !ok || len(args) != n {
		return command{}, errUsage
	}
	if n >= 2 {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return command{}, errUsage
		}
		cmd.productID = id
	}
	if n == 3 {
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			return command{}, errUsage
		}
		cmd.amount = amount
	}
	return cmd, nil
}

func (c command) apply(ctx context.Context, svc *cart.Service) error {
	switch c.name {
	case "add":
		return svc.AddProduct(ctx, c.productID)
	case "remove":
		return svc.RemoveProduct(ctx, c.productID)
	case "update":
		return svc.UpdateProductAmount(ctx, cart.UpdateAmountInput{ProductID: c.productID, Amount: c.amount})
	default:
		return nil
	}
}

func printCart(w io.Writer, c domain.Cart) {
	if c.Size() == 0 {
		fmt.Fprintln(w, "Carrinho vazio")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUTO\tQTD\tSUBTOTAL")
	for _, item := range c {
		title, _ := item.Attributes["title"].(string)
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", item.ID, title, item.Amount, formatPrice(item.Subtotal()))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d produto(s) | TOTAL %s\n", c.Size(), formatPrice(c.Total()))
}

// formatPrice renders an amount in Brazilian reais, e.g. "R$ 1.359,80".
func formatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
