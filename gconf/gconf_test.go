package gconf

import (
	"encoding/json"
	"testing"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/store"
)

type testConf struct {
	Owner string `json:"owner"`
}

func (c *testConf) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *testConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *testConf) Validate() error {
	if c.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	if err := Save(db, "testpkg", &testConf{Owner: "alice"}); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}

	var got testConf
	if err := Load(db, "testpkg", &got); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if got.Owner != "alice" {
		t.Fatalf("unexpected owner: %q", got.Owner)
	}

	if err := Load(db, "otherpkg", &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestSaveInvalid(t *testing.T) {
	db := store.MemStore()
	if err := Save(db, "testpkg", &testConf{}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := recpm.Options{
		"conf": json.RawMessage(`{"testpkg": {"owner": "bob"}}`),
	}
	var conf testConf
	if err := InitConfig(db, opts, "testpkg", &conf); err != nil {
		t.Fatalf("cannot initialize configuration: %s", err)
	}

	var got testConf
	if err := Load(db, "testpkg", &got); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if got.Owner != "bob" {
		t.Fatalf("unexpected owner: %q", got.Owner)
	}

	if err := InitConfig(db, opts, "missing", &conf); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}
