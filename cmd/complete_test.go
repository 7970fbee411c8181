package cmd

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("mcalc", flag.ContinueOnError)
	global.String("journal", "", "")
	global.Bool("v", false, "")

	c := Completion(global)

	assert.Contains(t, c.Flags, "journal")
	assert.Empty(t, c.Flags["v"].Predict(""), "bool flags take no value")
	for _, e := range Commands {
		assert.Contains(t, c.Sub, e.Command.Name())
	}

	export := c.Sub["export"]
	require.NotNil(t, export)
	assert.Equal(t, []string{"xlsx", "pdf"}, export.Flags["format"].Predict(""))
	assert.Empty(t, export.Flags["cost"].Predict(""))

	set := c.Sub["set"]
	require.NotNil(t, set)
	assert.Equal(t, []string{"cost", "price", "markup", "margin"}, set.Args.Predict(""))
}
