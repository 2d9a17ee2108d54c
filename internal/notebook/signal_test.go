package notebook

import (
	"reflect"
	"testing"
)

func TestSignalEmitOrder(t *testing.T) {
	sig := NewSignal()
	var order []string

	sig.Subscribe("first", func(string) { order = append(order, "first") })
	sig.Subscribe("second", func(string) { order = append(order, "second") })
	sig.Subscribe("third", func(string) { order = append(order, "third") })

	sig.Emit("sflight")

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("emit order = %v, want %v", order, want)
	}
}

func TestSignalResubscribeKeepsPosition(t *testing.T) {
	sig := NewSignal()
	var order []string

	sig.Subscribe("a", func(string) { order = append(order, "a1") })
	sig.Subscribe("b", func(string) { order = append(order, "b") })
	sig.Subscribe("a", func(string) { order = append(order, "a2") })

	sig.Emit("x")

	want := []string{"a2", "b"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("emit order = %v, want %v", order, want)
	}
	if got := sig.Subscribers(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Subscribers() = %v, want [a b]", got)
	}
}

func TestSignalPassesTableName(t *testing.T) {
	sig := NewSignal()
	var got string
	sig.Subscribe("watch", func(table string) { got = table })

	sig.Emit("scustom")
	if got != "scustom" {
		t.Errorf("subscriber received %q, want scustom", got)
	}
}
