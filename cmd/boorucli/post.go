package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post <id>",
	Short: "Get a post by ID",
	Long: `Get a single post by its upstream identifier.

Examples:
  boorucli post 123456
  boorucli post 123456 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

// commentsCmd represents the comments command
var commentsCmd = &cobra.Command{
	Use:   "comments <post-id>",
	Short: "List the comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

// deletedCmd represents the deleted command
var deletedCmd = &cobra.Command{
	Use:   "deleted",
	Short: "List deleted posts",
	Long:  `List deleted posts, optionally only those after a given post ID.`,
	Args:  cobra.NoArgs,
	RunE:  runDeleted,
}

var deletedLastID int64

func init() {
	deletedCmd.Flags().Int64Var(&deletedLastID, "last-id", 0, "only list deletions after this post ID")
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(deletedCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post ID: %s (must be a number)", args[0])
	}

	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	post, err := repo.GetPostByID(cmd.Context(), postID)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(post)
	}

	printPost(post)
	return nil
}

func runComments(cmd *cobra.Command, args []string) error {
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post ID: %s (must be a number)", args[0])
	}

	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	comments, err := repo.GetComments(cmd.Context(), postID)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comments)
	}

	if len(comments) == 0 {
		fmt.Println("No comments.")
		return nil
	}

	for _, c := range comments {
		fmt.Printf("[%s] %s:\n%s\n\n", string(c.CreatedAt), string(c.Creator), string(c.Body))
	}

	return nil
}

func runDeleted(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	var lastID *int64
	if deletedLastID > 0 {
		lastID = &deletedLastID
	}

	posts, err := repo.GetDeletedImages(cmd.Context(), lastID)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(posts)
	}

	if len(posts) == 0 {
		fmt.Println("No deleted posts.")
		return nil
	}

	for _, p := range posts {
		fmt.Printf("%d\t%s\n", int64(p.ID), p.FileURL)
	}

	return nil
}
