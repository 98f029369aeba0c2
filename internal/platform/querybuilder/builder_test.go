package querybuilder

import (
	"reflect"
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("value").
		From("kv_slots").
		Where(Eq("slot_key", "@koralink_teams")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT value FROM kv_slots WHERE slot_key = $1 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"@koralink_teams"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilder_QuestionDialect(t *testing.T) {
	query, args, err := Select("slot_key").
		Dialect(Question).
		From("kv_slots").
		Where(HasPrefix("slot_key", "@koralink_"), Eq("slot_key", "x")).
		OrderBy("slot_key").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := `SELECT slot_key FROM kv_slots WHERE slot_key LIKE ? ESCAPE '\' AND slot_key = ? ORDER BY slot_key`
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{`@koralink\_%`, "x"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Key       string    `db:"slot_key"`
		Value     []byte    `db:"value"`
		UpdatedAt time.Time `db:"updated_at"`
		ignored   string
	}
	at := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

	query, args, err := InsertModel(Dollar, "kv_slots", row{Key: "k", Value: []byte("v"), UpdatedAt: at}, "ON CONFLICT (slot_key) DO UPDATE SET value = EXCLUDED.value")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO kv_slots (slot_key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (slot_key) DO UPDATE SET value = EXCLUDED.value"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 3 || args[0] != "k" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("kv_slots").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected width mismatch error")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("kv_slots").Dialect(Question).Where(Eq("slot_key", "k")).ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	if query != "DELETE FROM kv_slots WHERE slot_key = ?" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"k"}) {
		t.Fatalf("unexpected args: %#v", args)
	}

	if _, _, err := DeleteFrom("kv_slots").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded delete")
	}
}
