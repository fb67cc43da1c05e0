// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quillpress/internal/store"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage post categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their post counts",
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long:  `Add a category. The slug is derived from the name.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Long:  `Rename a category. The slug is recomputed from the new name.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoriesRename,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Long: `Delete a category. What happens to posts still referencing it is
decided by CATEGORY_DELETE_POLICY: block (default), detach or cascade.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriesDelete,
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRenameCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	a.categories.Fetch(ctx)
	a.posts.Fetch(ctx)

	categories := a.categories.Categories()
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tPOSTS")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Slug, len(a.posts.ByCategory(c.ID)))
	}
	return w.Flush()
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	created, err := a.categories.Add(ctx, args[0])
	if err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	settle(start)

	fmt.Printf("Created category %s (%s)\n", created.ID, created.Slug)
	return nil
}

func runCategoriesRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	updated, err := a.categories.Update(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	settle(start)

	fmt.Printf("Renamed category %s to %q (%s)\n", updated.ID, updated.Name, updated.Slug)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := a.categories.Delete(ctx, args[0]); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			return fmt.Errorf("%w (detach or delete its posts first, or set CATEGORY_DELETE_POLICY)", err)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	settle(start)

	fmt.Printf("Deleted category %s\n", args[0])
	return nil
}
