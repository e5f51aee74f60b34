package cryptotax

import (
	"strings"
	"testing"
)

func TestDecodeRecords_Array(t *testing.T) {
	input := `[
		{"type": "buy", "coin": "btc", "amount": "1", "price": "100000", "date": "2024-01-01"},
		{"type": "sell", "coin": "btc", "amount": "1", "price": "150000", "date": "2024-02-01"}
	]`
	records, err := DecodeRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != "buy" || records[0].Amount != "1" {
		t.Errorf("first record = %+v", records[0])
	}
}

func TestDecodeRecords_JSONL(t *testing.T) {
	input := `{"type": "buy", "coin": "btc", "amount": "1", "price": "100000", "date": "2024-01-01"}

{"type": "sell", "coin": "btc", "amount": "1", "price": "150000", "date": "2024-02-01"}
`
	records, err := DecodeRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (empty lines skipped), got %d", len(records))
	}
	if records[1].Type != "sell" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestDecodeRecords_BadLine(t *testing.T) {
	if _, err := DecodeRecords(strings.NewReader("not json\n")); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestEncodeTransactions_CanonicalJSONL(t *testing.T) {
	txs, err := Normalize([]Record{
		{Type: "buy", Coin: "btc", Amount: "1.5", Price: "100000", Date: "2024-1-1"},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	var b strings.Builder
	if err := EncodeTransactions(&b, txs); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	want := `{"type":"buy","coin":"BTC","amount":1.5,"price":100000,"date":"2024-01-01","wallet":"default"}` + "\n"
	if b.String() != want {
		t.Errorf("EncodeTransactions() = %q, want %q", b.String(), want)
	}
}

func TestDecodeEncode_RoundTrip(t *testing.T) {
	input := `{"type":"trade","from_coin":"BTC","to_coin":"ETH","amount":"2","price":"150000","date":"2024-04-01","wallet":"exchange"}` + "\n"

	records, err := DecodeRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	txs, err := Normalize(records)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	var b strings.Builder
	if err := EncodeTransactions(&b, txs); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	want := `{"type":"trade","from_coin":"BTC","to_coin":"ETH","amount":2,"price":150000,"date":"2024-04-01","wallet":"exchange"}` + "\n"
	if b.String() != want {
		t.Errorf("round trip = %q, want %q", b.String(), want)
	}
}
