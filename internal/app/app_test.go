package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/best-buy/internal/catalog"
)

func runSession(t *testing.T, cfg *Config, input string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(context.Background(), zaptest.NewLogger(t),
		noopmetric.NewMeterProvider(), nooptrace.NewTracerProvider(),
		cfg, strings.NewReader(input), &out)
	return out.String(), err
}

func TestRun_DefaultCatalogSession(t *testing.T) {
	// Two MacBooks at second half price, three earbuds with the third free.
	out, err := runSession(t, &Config{ServiceName: "test"}, "2\n3\n1\n2\n2\n3\n\n2\n5\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Total of 1100 items in store")
	assert.Contains(t, out, "Order made! Total payment: $2675")
	assert.Contains(t, out, "Total of 1095 items in store")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_AtomicCheckout(t *testing.T) {
	// The second line exceeds the shipping limit; the MacBook must be restored.
	out, err := runSession(t, &Config{ServiceName: "test", AtomicCheckout: true}, "2\n3\n1\n1\n5\n2\n\n2\n5\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Error: Shipping: ")
	assert.Equal(t, 2, strings.Count(out, "Total of 1100 items in store"))
}

func TestRun_WithoutRollbackKeepsEarlierLines(t *testing.T) {
	out, err := runSession(t, &Config{ServiceName: "test"}, "2\n3\n1\n1\n5\n2\n\n2\n5\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Error: Shipping: ")
	assert.Contains(t, out, "Total of 1099 items in store")
}

func TestRun_DumpCatalog(t *testing.T) {
	out, err := runSession(t, &Config{ServiceName: "test", DumpCatalog: true}, "")
	require.NoError(t, err)

	c, err := catalog.Decode([]byte(out))
	require.NoError(t, err)
	assert.Len(t, c.Products, 5)
	assert.Len(t, c.Promotions, 3)
}

func TestRun_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"products": [{"name": "Gift Card", "type": "unlimited", "price": 50}]
	}`), 0o600))

	out, err := runSession(t, &Config{ServiceName: "test", CatalogFile: path}, "1\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Gift Card, Price: $50, Quantity: Unlimited, Promotion: None")
}

func TestRun_BadCatalogFile(t *testing.T) {
	_, err := runSession(t, &Config{ServiceName: "test", CatalogFile: filepath.Join(t.TempDir(), "nope.json")}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}
