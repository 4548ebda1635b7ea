package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/dcoale/skilld/internal/model"
)

func constSkill(v any) Func {
	return func(_ context.Context, _ Params) (any, error) {
		return v, nil
	}
}

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	r.Register("sina_quote", constSkill("payload"), 1, model.DataStockPrice)

	d, err := r.Resolve("sina_quote")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Name != "sina_quote" || d.CostLevel != 1 || d.DataType != model.DataStockPrice {
		t.Errorf("descriptor = %+v", d)
	}

	got, err := d.Skill.Invoke(context.Background(), nil)
	if err != nil || got != "payload" {
		t.Errorf("Invoke = (%v, %v), want (payload, nil)", got, err)
	}
}

func TestResolveUnknownName(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("missing")
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("err = %v, want ErrNotRegistered", err)
	}
}

func TestReRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register("quote", constSkill("first"), 1, model.DataStockPrice)
	r.Register("quote", constSkill("second"), 3, model.DataWebPage)

	d, err := r.Resolve("quote")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.CostLevel != 3 || d.DataType != model.DataWebPage {
		t.Errorf("descriptor not overwritten: %+v", d)
	}
	got, _ := d.Skill.Invoke(context.Background(), nil)
	if got != "second" {
		t.Errorf("payload = %v, want second", got)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}

func TestListSortedByName(t *testing.T) {
	r := NewRegistry()
	r.Register("web_fetch", constSkill(nil), 3, model.DataWebPage)
	r.Register("jina_reader", constSkill(nil), 3, model.DataWebPage)
	r.Register("sina_quote", constSkill(nil), 1, model.DataStockPrice)

	infos := r.List()
	if len(infos) != 3 {
		t.Fatalf("len = %d, want 3", len(infos))
	}
	want := []string{"jina_reader", "sina_quote", "web_fetch"}
	for i, name := range want {
		if infos[i].Name != name {
			t.Errorf("infos[%d].Name = %q, want %q", i, infos[i].Name, name)
		}
	}
}
