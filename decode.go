package cryptotax

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeRecords reads raw transaction records from an io.Reader. Two layouts
// are accepted: a single JSON array of records, or JSONL with one record per
// line. Empty lines are skipped. Records come back in input order; Normalize
// owns validation and date sorting.
func DecodeRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	// Sniff past leading whitespace to tell an array from a line stream.
	head, err := br.Peek(64)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if trimmed := bytes.TrimLeft(head, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		dec := json.NewDecoder(br)
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("could not decode transaction array: %w", err)
		}
		return records, nil
	}

	var records []Record
	scanner := bufio.NewScanner(br)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(line), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return records, nil
}

// EncodeTransaction marshals a single canonical transaction and writes it to
// the writer followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions persists canonical transactions to an io.Writer in JSONL
// format, one per line, in the order given. Combined with Normalize this is
// the canonical round-trip: decode, normalize, encode.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
