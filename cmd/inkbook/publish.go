package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/glabrego/inkbook/internal/app"
	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/render/article"
)

// loadCatalog opens the service and refreshes the cache from the catalog
// file so generated documents never lag behind it.
func loadCatalog(cmd *cobra.Command, env *appEnv) (*app.Service, []gallery.Image, func(), error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	service, closeService, err := openService(ctx, env)
	if err != nil {
		return nil, nil, nil, err
	}
	images, err := service.Reload(ctx)
	if err != nil {
		closeService()
		return nil, nil, nil, err
	}
	return service, images, closeService, nil
}

func newFeedCmd(env *appEnv) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Generate the blog RSS feed",
		Long:  `Generate the RSS 2.0 feed of the newest blog posts. Requires INKBOOK_SITE_URL.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.cfg.RequireSiteURL(); err != nil {
				return err
			}
			service, _, closeService, err := loadCatalog(cmd, env)
			if err != nil {
				return err
			}
			defer closeService()

			posts, err := service.Posts(cmd.Context())
			if err != nil {
				return err
			}
			rss, err := blog.RSS(env.cfg.Site, posts)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), rss)
				return err
			}
			if err := os.WriteFile(output, []byte(rss+"\n"), 0o644); err != nil {
				return fmt.Errorf("write feed: %w", err)
			}
			env.logger.Info("feed written", zap.String("path", output), zap.Int("posts", len(posts)))
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d posts to %s\n", len(posts), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the feed to a file instead of stdout")
	return cmd
}

func newSchemaCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [slug]",
		Short: "Print schema.org JSON-LD",
		Long: `Print the studio's LocalBusiness document, or the BlogPosting document of
the post with the given slug. Requires INKBOOK_SITE_URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.cfg.RequireSiteURL(); err != nil {
				return err
			}
			if len(args) == 0 {
				doc, err := blog.LocalBusinessSchema(env.cfg.Site)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
				return err
			}

			service, _, closeService, err := loadCatalog(cmd, env)
			if err != nil {
				return err
			}
			defer closeService()

			post, ok, err := service.Post(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no post with slug %q", args[0])
			}
			doc, err := blog.BlogPostingSchema(env.cfg.Site, post)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return err
		},
	}
}

func newStylesCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the style filter options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, images, closeService, err := loadCatalog(cmd, env)
			if err != nil {
				return err
			}
			defer closeService()

			out := cmd.OutOrStdout()
			for _, style := range gallery.StyleOptions(images) {
				count := len(gallery.Select(images, gallery.State{Style: style}))
				if _, err := fmt.Fprintf(out, "%s\t%d\n", style, count); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newPostCmd(env *appEnv) *cobra.Command {
	var width int
	var showImages bool

	cmd := &cobra.Command{
		Use:   "post [slug]",
		Short: "List blog posts or read one in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, closeService, err := loadCatalog(cmd, env)
			if err != nil {
				return err
			}
			defer closeService()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				posts, err := service.Posts(cmd.Context())
				if err != nil {
					return err
				}
				for _, post := range posts {
					if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", post.Date.Format(time.DateOnly), post.Slug, blog.Excerpt(post, 60)); err != nil {
						return err
					}
				}
				return nil
			}

			post, ok, err := service.Post(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no post with slug %q", args[0])
			}
			if width <= 0 {
				width = terminalWidth(out)
			}
			lines := article.Lines(post, env.cfg.Site, width)
			if showImages {
				if urls := article.ImageURLs(post, env.cfg.Site); len(urls) > 0 {
					lines = append(lines, "", "Images:")
					for _, u := range urls {
						lines = append(lines, "  "+u)
					}
				}
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width for the rendered post (default: terminal width)")
	cmd.Flags().BoolVar(&showImages, "images", false, "List the post's image URLs after the text")
	return cmd
}

// terminalWidth reports the width of out when it is a terminal, capped for
// readability, and a fixed width otherwise.
func terminalWidth(out io.Writer) int {
	const fallback, maxWidth = 80, 100
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return min(width, maxWidth)
}
