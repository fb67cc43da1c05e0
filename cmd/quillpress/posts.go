// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quillpress/internal/media"
	"quillpress/internal/models"
	"quillpress/internal/store"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage blog posts",
}

var (
	postsListPage     int
	postsListPerPage  int
	postsListSearch   string
	postsListCategory string
)

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first within server order",
	RunE:  runPostsList,
}

var (
	postCreateTitle    string
	postCreateContent  string
	postCreateShort    string
	postCreateCategory string
	postCreateImage    string
)

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Long: `Create a post. The slug is derived from the title and the creation
timestamp is attached client-side. With --image, the file is uploaded to
the configured image host first and its URLs are stored on the post.`,
	RunE: runPostsCreate,
}

var (
	postUpdateTitle    string
	postUpdateContent  string
	postUpdateShort    string
	postUpdateCategory string
	postUpdateImage    string
)

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a post",
	Long: `Update a post. Only the flags you pass are sent; everything else is
left as it is on the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runPostsUpdate,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsDelete,
}

func init() {
	postsListCmd.Flags().IntVar(&postsListPage, "page", 1, "page number")
	postsListCmd.Flags().IntVar(&postsListPerPage, "per-page", 10, "posts per page")
	postsListCmd.Flags().StringVar(&postsListSearch, "search", "", "filter by title substring")
	postsListCmd.Flags().StringVar(&postsListCategory, "category", store.CategoryAll, "filter by category id")

	postsCreateCmd.Flags().StringVar(&postCreateTitle, "title", "", "post title (required)")
	postsCreateCmd.Flags().StringVar(&postCreateContent, "content", "", "post body (required)")
	postsCreateCmd.Flags().StringVar(&postCreateShort, "short", "", "short description")
	postsCreateCmd.Flags().StringVar(&postCreateCategory, "category", "", "category id")
	postsCreateCmd.Flags().StringVar(&postCreateImage, "image", "", "image file to upload")
	postsCreateCmd.MarkFlagRequired("title")
	postsCreateCmd.MarkFlagRequired("content")

	postsUpdateCmd.Flags().StringVar(&postUpdateTitle, "title", "", "new title")
	postsUpdateCmd.Flags().StringVar(&postUpdateContent, "content", "", "new body")
	postsUpdateCmd.Flags().StringVar(&postUpdateShort, "short", "", "new short description")
	postsUpdateCmd.Flags().StringVar(&postUpdateCategory, "category", "", "new category id (empty detaches)")
	postsUpdateCmd.Flags().StringVar(&postUpdateImage, "image", "", "new image file to upload")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsUpdateCmd)
	postsCmd.AddCommand(postsDeleteCmd)
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	a.posts.Fetch(ctx)
	a.categories.Fetch(ctx)

	filtered := store.FilterPosts(a.posts.Posts(), postsListSearch, postsListCategory)
	pages := store.PageCount(len(filtered), postsListPerPage)
	page := store.Paginate(filtered, postsListPage, postsListPerPage)

	if len(page) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATED")
	for _, p := range page {
		category := "-"
		if c := a.categories.Find(p.CategoryID); c != nil {
			category = c.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.ID, p.Title, category, p.CreatedAt.Format(time.DateOnly))
	}
	w.Flush()

	fmt.Printf("\nPage %d of %d (%d post(s))\n", clampPage(postsListPage, pages), pages, len(filtered))
	return nil
}

func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	post := models.Post{
		Title:      postCreateTitle,
		Content:    postCreateContent,
		CategoryID: postCreateCategory,
	}
	if postCreateShort != "" {
		post.ShortDescription = models.StringPtr(postCreateShort)
	}

	if postCreateImage != "" {
		upload, err := uploadImage(ctx, a, postCreateImage)
		if err != nil {
			return err
		}
		post.Image = models.StringPtr(upload.URL)
		post.Thumbnail = models.StringPtr(upload.ThumbnailURL)
	}

	created, err := a.posts.Add(ctx, post)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	settle(start)

	fmt.Printf("Created post %s (%s)\n", created.ID, created.Slug)
	return nil
}

func runPostsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	id := args[0]

	var patch models.PostPatch
	if cmd.Flags().Changed("title") {
		patch.Title = models.StringPtr(postUpdateTitle)
	}
	if cmd.Flags().Changed("content") {
		patch.Content = models.StringPtr(postUpdateContent)
	}
	if cmd.Flags().Changed("short") {
		patch.ShortDescription = models.StringPtr(postUpdateShort)
	}
	if cmd.Flags().Changed("category") {
		patch.CategoryID = models.StringPtr(postUpdateCategory)
	}
	if cmd.Flags().Changed("image") {
		upload, err := uploadImage(ctx, a, postUpdateImage)
		if err != nil {
			return err
		}
		patch.Image = models.StringPtr(upload.URL)
		patch.Thumbnail = models.StringPtr(upload.ThumbnailURL)
	}
	if patch.IsZero() {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	start := time.Now()
	if err := a.posts.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	settle(start)

	fmt.Printf("Updated post %s\n", id)
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := a.posts.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	settle(start)

	fmt.Printf("Deleted post %s\n", args[0])
	return nil
}

func uploadImage(ctx context.Context, a *app, path string) (*media.Upload, error) {
	if a.uploader == nil {
		return nil, fmt.Errorf("image uploads need IMAGE_HOST_KEY to be set")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	upload, err := a.uploader.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return upload, nil
}
