package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisbelcher/payments-engine/engine"
)

func readAll(t *testing.T, input string) ([]engine.Transaction, error) {
	t.Helper()

	reader, err := NewReader(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	var transactions []engine.Transaction

	for {
		transaction, err := reader.Read()
		if err == io.EOF {
			return transactions, nil
		}

		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}
}

// ---------------------------------------------------------------------------
// Header validation
// ---------------------------------------------------------------------------

func TestNewReaderHeader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "canonical header", input: "type,client,tx,amount\n"},
		{name: "whitespace tolerated", input: "type, client, tx, amount\n"},
		{name: "case-insensitive names", input: "Type,Client,Tx,Amount\n"},
		{name: "empty input", input: "", wantErr: true},
		{name: "wrong field name", input: "kind,client,tx,amount\n", wantErr: true},
		{name: "wrong field order", input: "client,type,tx,amount\n", wantErr: true},
		{name: "missing field", input: "type,client,tx\n", wantErr: true},
		{name: "extra field", input: "type,client,tx,amount,notes\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input))

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidHeader)
				return
			}

			require.NoError(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// Record decoding
// ---------------------------------------------------------------------------

func TestReadDecodesRecords(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		" withdrawal , 2 , 7 , 0.5 \n" +
		"Dispute,1,1,\n" +
		"resolve,1,1\n" +
		"chargeback,1,1,\n"

	transactions, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, transactions, 5)

	assert.Equal(t, engine.Transaction{
		Type:   engine.TypeDeposit,
		Client: 1,
		Tx:     1,
		Amount: decimal.RequireFromString("1.0"),
	}, transactions[0])

	assert.Equal(t, engine.TypeWithdrawal, transactions[1].Type)
	assert.Equal(t, engine.ClientID(2), transactions[1].Client)
	assert.Equal(t, engine.TransactionID(7), transactions[1].Tx)
	assert.True(t, transactions[1].Amount.Equal(decimal.RequireFromString("0.5")))

	// Dispute-family records carry a zero amount whether the trailing column
	// is empty or omitted entirely.
	for _, transaction := range transactions[2:] {
		assert.True(t, transaction.Amount.IsZero())
	}
}

func TestReadBoundsIdentifiers(t *testing.T) {
	transactions, err := readAll(t, "type,client,tx,amount\ndeposit,65535,4294967295,1.0\n")
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	assert.Equal(t, engine.ClientID(65535), transactions[0].Client)
	assert.Equal(t, engine.TransactionID(4294967295), transactions[0].Tx)
}

func TestReadRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{name: "unknown type token", record: "transfer,1,1,1.0"},
		{name: "unparseable amount", record: "deposit,1,1,one"},
		{name: "client out of range", record: "deposit,65536,1,1.0"},
		{name: "tx out of range", record: "deposit,1,4294967296,1.0"},
		{name: "negative client", record: "deposit,-1,1,1.0"},
		{name: "missing ids", record: "deposit,1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, "type,client,tx,amount\n"+tt.record+"\n")
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestReadStopsAtFirstMalformedRecord(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,1,2,bad\n" +
		"deposit,1,3,1.0\n"

	reader, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	_, err = reader.Read()
	require.NoError(t, err)

	_, err = reader.Read()
	require.ErrorIs(t, err, ErrInvalidRecord)
}
