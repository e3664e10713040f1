package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lewisbelcher/payments-engine/engine"
)

var (
	// ErrInvalidHeader is returned when the input header does not match the
	// expected `type,client,tx,amount` field set.
	ErrInvalidHeader = errors.New("invalid input header")
	// ErrInvalidRecord is returned when a record cannot be decoded into a
	// transaction.
	ErrInvalidRecord = errors.New("invalid input record")
)

// expectedHeader is the required input field set, in order.
var expectedHeader = []string{"type", "client", "tx", "amount"}

// Reader decodes transaction records from CSV input. Fields are
// whitespace-trimmed and the type token is matched case-insensitively;
// anything else malformed is a fatal decode error.
type Reader struct {
	csv    *csv.Reader
	record int
}

// NewReader creates a Reader and validates the input header. An empty input
// or a header with the wrong field set is an error.
func NewReader(r io.Reader) (*Reader, error) {
	c := csv.NewReader(r)
	// Records legitimately omit the trailing amount column; the shape is
	// checked per record in Read.
	c.FieldsPerRecord = -1

	header, err := c.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidHeader, len(expectedHeader), len(header))
	}

	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) != expectedHeader[i] {
			return nil, fmt.Errorf("%w: field %d is %q, expected %q", ErrInvalidHeader, i, name, expectedHeader[i])
		}
	}

	return &Reader{csv: c}, nil
}

// Read decodes the next transaction record. It returns io.EOF when the input
// is exhausted and a wrapped ErrInvalidRecord for any malformed record.
func (r *Reader) Read() (engine.Transaction, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return engine.Transaction{}, io.EOF
		}

		return engine.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	r.record++

	return r.decode(record)
}

func (r *Reader) decode(record []string) (engine.Transaction, error) {
	// The amount column may be omitted entirely for dispute-family records.
	if len(record) != len(expectedHeader) && len(record) != len(expectedHeader)-1 {
		return engine.Transaction{}, fmt.Errorf("%w %d: expected %d or %d fields, got %d",
			ErrInvalidRecord, r.record, len(expectedHeader)-1, len(expectedHeader), len(record))
	}

	txType, err := engine.ParseTransactionType(strings.TrimSpace(record[0]))
	if err != nil {
		return engine.Transaction{}, fmt.Errorf("%w %d: %v", ErrInvalidRecord, r.record, err)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return engine.Transaction{}, fmt.Errorf("%w %d: client id %q: %v", ErrInvalidRecord, r.record, record[1], err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return engine.Transaction{}, fmt.Errorf("%w %d: transaction id %q: %v", ErrInvalidRecord, r.record, record[2], err)
	}

	amount := decimal.Zero

	if len(record) == len(expectedHeader) {
		if field := strings.TrimSpace(record[3]); field != "" {
			amount, err = decimal.NewFromString(field)
			if err != nil {
				return engine.Transaction{}, fmt.Errorf("%w %d: amount %q: %v", ErrInvalidRecord, r.record, record[3], err)
			}
		}
	}

	return engine.Transaction{
		Type:   txType,
		Client: engine.ClientID(client),
		Tx:     engine.TransactionID(tx),
		Amount: amount,
	}, nil
}
