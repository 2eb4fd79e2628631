package intellisense_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/intellisense"
	"github.com/oakwood-commons/advq/pkg/query"
)

func Example() {
	set, err := filters.Default()
	if err != nil {
		panic(err)
	}
	engine := intellisense.NewEngine(intellisense.NewFilterProvider(set, intellisense.DefaultOptions()))
	session := query.NewSession(set.Keys())

	session.SetValue("alice sta")
	sugg := engine.Suggest(session)
	fmt.Println(sugg.Position, len(sugg.Items))

	edit := engine.Apply(session, sugg.Items[0])
	fmt.Printf("%q %d\n", edit.Value, edit.Caret)

	sugg = engine.Suggest(session)
	fmt.Println(sugg.Position)
	for _, it := range sugg.Items {
		fmt.Println(" ", it.Text, "-", it.Display)
	}

	edit = engine.Apply(session, sugg.Items[1])
	fmt.Printf("%q %d\n", edit.Value, edit.Caret)
	fmt.Println(session.Parse().Filters.Values("status"), session.Parse().Remaining)
	// Output:
	// awaiting-key 3
	// "alice status:" 13
	// awaiting-value status
	//   inactive - Inactive
	//   active - Active
	//   pending - Pending
	// "alice status:active " 20
	// [active] alice
}

type staticProvider struct{ items []intellisense.Completion }

func (p staticProvider) Suggest(value string, caret int) intellisense.Suggestions {
	return intellisense.Suggestions{Position: query.ClassifyAt(value, caret, nil), Items: p.items}
}

func TestSetProvider(t *testing.T) {
	set, err := filters.Default()
	require.NoError(t, err)

	custom := staticProvider{items: []intellisense.Completion{{Text: "owner", Kind: intellisense.CompletionFilterKey}}}
	intellisense.SetProvider(custom)
	t.Cleanup(func() { intellisense.SetProvider(nil) })

	got := intellisense.NewProvider(set, intellisense.DefaultOptions()).Suggest("", 0)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "owner", got.Items[0].Text)

	intellisense.SetProvider(nil)
	got = intellisense.NewProvider(set, intellisense.DefaultOptions()).Suggest("", 0)
	assert.Len(t, got.Items, 3)
}
