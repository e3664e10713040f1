package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/lewisbelcher/payments-engine/engine"
)

// outputScale is the number of fractional digits each amount is rendered with.
const outputScale = 4

// outputHeader is the account listing field set, in order.
var outputHeader = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts encodes the final account store as CSV, one row per account.
// Rows are sorted by client id; the output contract leaves ordering free, so
// sorting keeps runs deterministic.
func WriteAccounts(w io.Writer, accounts engine.Accounts) error {
	clients := make([]engine.ClientID, 0, len(accounts))
	for client := range accounts {
		clients = append(clients, client)
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })

	c := csv.NewWriter(w)

	if err := c.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, client := range clients {
		account := accounts[client]

		row := []string{
			strconv.FormatUint(uint64(client), 10),
			account.Available().StringFixed(outputScale),
			account.Held.StringFixed(outputScale),
			account.Total.StringFixed(outputScale),
			strconv.FormatBool(account.Locked),
		}

		if err := c.Write(row); err != nil {
			return fmt.Errorf("write account %d: %w", client, err)
		}
	}

	c.Flush()

	return c.Error()
}
