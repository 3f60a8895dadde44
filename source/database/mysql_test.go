package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
)

func TestEncodeJSONColumnsTurnsNilIntoNull(t *testing.T) {
	out, err := encodeJSONColumns(schemas.Document(nil), []schemas.Document{{"phase": "Launch"}}, []string(nil))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out[0] != nil || out[2] != nil {
		t.Fatalf("nil trees should be NULL: %#v", out)
	}
	if out[1] != `[{"phase":"Launch"}]` {
		t.Fatalf("unexpected encoding: %#v", out[1])
	}
}

func TestDecodeJSONColumnsSkipsNull(t *testing.T) {
	var tree schemas.Document
	var list []string
	err := decodeJSONColumns(map[string]jsonColumn{
		"tree": {nil, &tree},
		"list": {[]byte(`["a","b"]`), &list},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tree != nil || len(list) != 2 {
		t.Fatalf("tree=%v list=%v", tree, list)
	}

	err = decodeJSONColumns(map[string]jsonColumn{"bad": {[]byte(`{`), &tree}})
	if err == nil {
		t.Fatalf("expected error on malformed column")
	}
}

func TestMySQLStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_URI")
	if dsn == "" {
		t.Skip("MYSQL_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := ConnectMySQL(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close(context.Background())

	exerciseStore(t, ctx, store)
}
