package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/list_events"
	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/archive_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/set_status"
)

func newCreateCmd(a *app) *cobra.Command {
	var req create_product.Request

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			id, err := svc.CreateProduct.Execute(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, id)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "product name")
	flags.StringVar(&req.Description, "description", "", "product description")
	flags.StringVar(&req.Category, "category", "", "product category")
	flags.StringArrayVar(&req.Tags, "tag", nil, "tag (repeatable)")
	flags.StringToStringVar(&req.Attributes, "attr", nil, "attribute key=value (repeatable)")

	return cmd
}

// editFlags holds the raw edit flags until they are turned into a request.
type editFlags struct {
	id          string
	version     int64
	name        string
	description string
	category    string
	clearTags   bool
	removeTags  []string
	renameTags  []string
	addTags     []string
	clearAttrs  bool
	removeAttrs []string
	setAttrs    map[string]string
}

func (f *editFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.id, "id", "", "product ID")
	flags.Int64Var(&f.version, "version", 0, "expected version (0 = as loaded)")
	flags.StringVar(&f.name, "name", "", "new name")
	flags.StringVar(&f.description, "description", "", "new description")
	flags.StringVar(&f.category, "category", "", "new category")
	flags.BoolVar(&f.clearTags, "clear-tags", false, "remove every tag first")
	flags.StringArrayVar(&f.removeTags, "remove-tag", nil, "tag to remove (repeatable)")
	flags.StringArrayVar(&f.renameTags, "rename-tag", nil, "old:new tag rename (repeatable)")
	flags.StringArrayVar(&f.addTags, "add-tag", nil, "tag to add (repeatable)")
	flags.BoolVar(&f.clearAttrs, "clear-attrs", false, "remove every attribute first")
	flags.StringArrayVar(&f.removeAttrs, "remove-attr", nil, "attribute key to remove (repeatable)")
	flags.StringToStringVar(&f.setAttrs, "set-attr", nil, "attribute key=value to set (repeatable)")
}

// request builds the edit request. Scalar fields are only edited when their
// flag was given, so an explicit empty value still reaches the domain.
func (f *editFlags) request(flags *pflag.FlagSet) (*edit_product.Request, error) {
	if f.id == "" {
		return nil, fmt.Errorf("--id is required")
	}

	req := &edit_product.Request{
		ProductID:        f.id,
		Version:          f.version,
		ClearTags:        f.clearTags,
		RemoveTags:       f.removeTags,
		AddTags:          f.addTags,
		ClearAttributes:  f.clearAttrs,
		RemoveAttributes: f.removeAttrs,
		SetAttributes:    f.setAttrs,
	}

	if flags.Changed("name") {
		req.Name = &f.name
	}
	if flags.Changed("description") {
		req.Description = &f.description
	}
	if flags.Changed("category") {
		req.Category = &f.category
	}

	for _, r := range f.renameTags {
		from, to, ok := strings.Cut(r, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("--rename-tag: expected old:new, got %q", r)
		}
		req.RenameTags = append(req.RenameTags, edit_product.TagRename{From: from, To: to})
	}

	return req, nil
}

func newEditCmd(a *app) *cobra.Command {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit fields, tags and attributes of a product",
		Args:  cobra.NoArgs,
	}
	f.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		req, err := f.request(cmd.Flags())
		if err != nil {
			return err
		}

		svc, err := a.services(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := svc.EditProduct.Execute(cmd.Context(), req)
		if err != nil {
			return err
		}
		if !resp.Changed {
			fmt.Fprintf(a.out, "no changes (version %d)\n", resp.Version)
			return nil
		}
		slices.Sort(resp.DirtyFields)
		fmt.Fprintf(a.out, "updated %s to version %d (%d events)\n",
			strings.Join(resp.DirtyFields, ", "), resp.Version, resp.EventsWritten)
		return nil
	}

	return cmd
}

func newStatusCmd(a *app, active bool) *cobra.Command {
	req := set_status.Request{Active: active}

	use, short := "activate", "Activate a product"
	if !active {
		use, short = "deactivate", "Deactivate a product"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ProductID == "" {
				return fmt.Errorf("--id is required")
			}

			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			if err := svc.SetStatus.Execute(cmd.Context(), &req); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProductID, "id", "", "product ID")
	cmd.Flags().Int64Var(&req.Version, "version", 0, "expected version (0 = as loaded)")

	return cmd
}

func newArchiveCmd(a *app) *cobra.Command {
	var req archive_product.Request

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ProductID == "" {
				return fmt.Errorf("--id is required")
			}

			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			at, err := svc.ArchiveProduct.Execute(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "archived at %s\n", at.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProductID, "id", "", "product ID")
	cmd.Flags().Int64Var(&req.Version, "version", 0, "expected version (0 = as loaded)")

	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var req get_product.Request

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ProductID == "" {
				return fmt.Errorf("--id is required")
			}

			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			p, err := svc.GetProduct.Execute(cmd.Context(), &req)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s  %s  [%s]  v%d\n", p.ProductID, p.Name, p.Status, p.Version)
			fmt.Fprintf(a.out, "  category:    %s\n", p.Category)
			if p.Description != "" {
				fmt.Fprintf(a.out, "  description: %s\n", p.Description)
			}
			fmt.Fprintf(a.out, "  tags:        %s\n", strings.Join(p.Tags, ", "))

			keys := make([]string, 0, len(p.Attributes))
			for k := range p.Attributes {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(a.out, "  %s = %s\n", k, p.Attributes[k])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProductID, "id", "", "product ID")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var req list_products.Request

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			res, err := svc.ListProducts.Execute(cmd.Context(), &req)
			if err != nil {
				return err
			}

			for _, p := range res.Products {
				fmt.Fprintf(a.out, "%s  %-30s  %-10s  %s\n", p.ProductID, p.Name, p.Status, strings.Join(p.Tags, ","))
			}
			fmt.Fprintf(a.out, "\n%d of %d", len(res.Products), res.TotalCount)
			if res.NextPageToken != "" {
				fmt.Fprintf(a.out, " (next page: --page-token %s)", res.NextPageToken)
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Category, "category", "", "filter by category")
	flags.StringVar(&req.Tag, "tag", "", "filter by tag (case-insensitive)")
	flags.BoolVar(&req.IncludeArchived, "archived", false, "include archived products")
	flags.IntVar(&req.PageSize, "page-size", 0, "page size")
	flags.StringVar(&req.PageToken, "page-token", "", "page token from a previous call")

	return cmd
}

func newEventsCmd(a *app) *cobra.Command {
	var req list_events.Request

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List outbox events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			events, err := svc.ListEvents.Execute(cmd.Context(), &req)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Fprintln(a.out, "No events found")
				return nil
			}
			for i, e := range events {
				fmt.Fprintf(a.out, "%d. %s #%d (aggregate: %s, status: %s) %s\n",
					i+1, e.EventType, e.Sequence, e.AggregateID, e.Status, e.Payload)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProductID, "id", "", "product ID (empty = all products)")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "maximum number of events")

	return cmd
}
