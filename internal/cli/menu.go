// Package cli implements the interactive store menu.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/best-buy/internal/domain/domainerr"
	"github.com/xenking/best-buy/internal/domain/order"
	"github.com/xenking/best-buy/internal/domain/product"
)

// Catalog is the read side of the store shown by the menu.
type Catalog interface {
	Products() []*product.Product
	TotalQuantity() int
}

// Orders places and lists orders.
type Orders interface {
	PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (*order.PlaceOrderResult, error)
	History(ctx context.Context) ([]order.Order, error)
}

// Menu runs the text menu over a pair of streams.
type Menu struct {
	catalog Catalog
	orders  Orders
	in      io.Reader
	out     io.Writer
	lines   <-chan string
	werr    error
}

// New creates a Menu reading commands from in and writing to out.
func New(catalog Catalog, orders Orders, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		orders:  orders,
		in:      in,
		out:     out,
	}
}

// Run shows the menu until the user quits, input ends or ctx is canceled.
// Rejected orders are reported to the user and do not end the session.
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = scanLines(m.in, done)
	lg := zctx.From(ctx)

	for {
		m.showMenu()
		choice, err := m.prompt(ctx, "Please choose a number: ")
		if err != nil {
			return m.finish(ctx, err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.listProducts()
		case "2":
			m.printf("\nTotal of %d items in store\n", m.catalog.TotalQuantity())
		case "3":
			if err := m.makeOrder(ctx); err != nil {
				return m.finish(ctx, err)
			}
		case "4":
			if err := m.showHistory(ctx); err != nil {
				return m.finish(ctx, err)
			}
		case "5":
			m.printf("Goodbye!\n")
			lg.Debug("Session finished")
			return m.werr
		default:
			m.printf("Invalid choice, please try again.\n")
		}
		if m.werr != nil {
			return errors.Wrap(m.werr, "write")
		}
	}
}

// finish turns the end of input or cancellation into a clean exit.
func (m *Menu) finish(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		zctx.From(ctx).Debug("Session ended", zap.Error(err))
		return nil
	}
	return err
}

func (m *Menu) showMenu() {
	m.printf("\n   Store Menu\n")
	m.printf("   ----------\n")
	m.printf("1. List all products in store\n")
	m.printf("2. Show total amount in store\n")
	m.printf("3. Make an order\n")
	m.printf("4. Show order history\n")
	m.printf("5. Quit\n")
}

func (m *Menu) listProducts() []*product.Product {
	products := m.catalog.Products()
	m.printf("------\n")
	for i, p := range products {
		m.printf("%d. %s\n", i+1, p.Display())
	}
	m.printf("------\n")
	return products
}

func (m *Menu) makeOrder(ctx context.Context) error {
	products := m.listProducts()
	m.printf("When you want to finish order, enter empty text.\n")

	var items []order.Item
	for {
		input, err := m.prompt(ctx, "Which product # do you want? ")
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			break
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(products) {
			m.printf("Invalid product number.\n")
			continue
		}

		input, err = m.prompt(ctx, "What amount do you want? ")
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			m.printf("Amount must be a whole number.\n")
			continue
		}
		if quantity <= 0 {
			m.printf("Quantity must be positive.\n")
			continue
		}

		items = append(items, order.Item{Index: n - 1, Quantity: quantity})
		m.printf("Product added to list!\n\n")
	}

	if len(items) == 0 {
		return nil
	}

	result, err := m.orders.PlaceOrder(ctx, order.PlaceOrderRequest{Items: items})
	if err != nil {
		msg, ok := orderErrorMessage(err)
		if !ok {
			return errors.Wrap(err, "place order")
		}
		m.printf("Error: %s\n", msg)
		return nil
	}

	m.printf("\n********\nOrder made! Total payment: $%s\n", result.Order.Total.String())
	return nil
}

func (m *Menu) showHistory(ctx context.Context) error {
	orders, err := m.orders.History(ctx)
	if err != nil {
		return errors.Wrap(err, "order history")
	}
	if len(orders) == 0 {
		m.printf("\nNo orders yet.\n")
		return nil
	}

	m.printf("------\n")
	for i, o := range orders {
		m.printf("%d. Order %s, %s, %d items, Total: $%s\n",
			i+1, o.ID, o.CreatedAt.Format("2006-01-02 15:04:05"), o.Units(), o.Total.String())
		for _, l := range o.Lines {
			m.printf("   %d x %s: $%s\n", l.Quantity, l.ProductName, l.Subtotal.String())
		}
	}
	m.printf("------\n")
	return nil
}

// orderErrorMessage converts order placement errors to text shown to the
// user. It reports false for errors the session cannot recover from.
func orderErrorMessage(err error) (string, bool) {
	var opErr *domainerr.OperationError
	if errors.As(err, &opErr) {
		return opErr.Error(), true
	}

	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		return iqErr.Error(), true
	}

	var pnfErr *order.ProductNotFoundError
	if errors.As(err, &pnfErr) {
		return pnfErr.Error(), true
	}

	if errors.Is(err, order.ErrEmptyItems) || errors.Is(err, domainerr.ErrInvalidOperation) {
		return err.Error(), true
	}

	return "", false
}

func (m *Menu) prompt(ctx context.Context, text string) (string, error) {
	m.printf("%s", text)
	if m.werr != nil {
		return "", errors.Wrap(m.werr, "write")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (m *Menu) printf(format string, args ...any) {
	if m.werr != nil {
		return
	}
	_, m.werr = fmt.Fprintf(m.out, format, args...)
}

// scanLines feeds lines of r to the returned channel until the end of input
// or until done is closed. A read blocked on r outlives the session.
func scanLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		s := bufio.NewScanner(r)
		for s.Scan() {
			select {
			case lines <- s.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
