package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/services"
)

func parseEdit(t *testing.T, args ...string) (*edit_product.Request, error) {
	t.Helper()

	f := &editFlags{}
	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))

	return f.request(fs)
}

func TestEditFlags_Request(t *testing.T) {
	req, err := parseEdit(t,
		"--id", "p-1",
		"--version", "3",
		"--name", "",
		"--add-tag", "led", "--add-tag", "sale",
		"--rename-tag", "desk:office",
		"--set-attr", "color=black",
		"--set-attr", "watts=40",
		"--remove-attr", "size",
		"--clear-tags",
	)
	require.NoError(t, err)

	assert.Equal(t, "p-1", req.ProductID)
	assert.Equal(t, int64(3), req.Version)
	require.NotNil(t, req.Name, "explicit empty value is still an edit")
	assert.Equal(t, "", *req.Name)
	assert.Nil(t, req.Description)
	assert.Nil(t, req.Category)
	assert.True(t, req.ClearTags)
	assert.False(t, req.ClearAttributes)
	assert.Equal(t, []string{"led", "sale"}, req.AddTags)
	assert.Equal(t, []edit_product.TagRename{{From: "desk", To: "office"}}, req.RenameTags)
	assert.Equal(t, map[string]string{"color": "black", "watts": "40"}, req.SetAttributes)
	assert.Equal(t, []string{"size"}, req.RemoveAttributes)
}

func TestEditFlags_Errors(t *testing.T) {
	_, err := parseEdit(t, "--name", "x")
	assert.ErrorContains(t, err, "--id is required")

	_, err = parseEdit(t, "--id", "p-1", "--rename-tag", "desk")
	assert.ErrorContains(t, err, "expected old:new")

	_, err = parseEdit(t, "--id", "p-1", "--rename-tag", ":office")
	assert.ErrorContains(t, err, "expected old:new")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(&bytes.Buffer{})

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t,
		[]string{"create", "edit", "activate", "deactivate", "archive", "get", "list", "events"},
		names)
}

func TestRootCmd_RequiresID(t *testing.T) {
	for _, sub := range []string{"get", "archive", "activate", "deactivate", "edit"} {
		t.Run(sub, func(t *testing.T) {
			root := newRootCmd(&bytes.Buffer{})
			root.SetArgs([]string{sub})
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			err := root.Execute()
			assert.ErrorContains(t, err, "--id is required")
		})
	}
}

func TestExecute_ClosesServicesOnFailure(t *testing.T) {
	var out bytes.Buffer
	a := &app{out: &out, svc: services.Wire(nil, clock.System())}

	err := a.execute(context.Background(), []string{"get", "--dump-metrics"})
	assert.ErrorContains(t, err, "--id is required")

	assert.Nil(t, a.svc, "services must be released after a failed command")
	assert.Contains(t, out.String(), "catalog_committer_mutations_total")
}
