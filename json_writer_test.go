package tradesim

import (
	"encoding/json"
	"math"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1)
		w.Embed(json.RawMessage(`{"c":3,"d":4}`))
		w.Append("a", "x")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"z":1,"c":3,"d":4,"a":"x"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is added by Append.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"a":0,"d":"hello"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed money", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("command", CmdDeposit)
		w.EmbedFrom(M(200.5, "USD"))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"command":"deposit","currency":"USD","amount":200.5}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed empty object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Embed([]byte(" {} "))
		w.Append("b", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"a":1,"b":2}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed not an object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Embed([]byte(`[1,2]`))
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() succeeded, want an error for an embedded array")
		}
	})

	t.Run("first error sticks", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", math.Inf(1))
		w.Append("good", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() succeeded, want an error for a non finite number")
		}
	})
}
