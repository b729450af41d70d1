package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openaidmap/community-map/mapclient"
)

func commentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List and add comments on a marker",
	}
	cmd.AddCommand(commentsListCmd())
	cmd.AddCommand(commentsAddCmd())
	return cmd
}

func parseLocationID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("location id must be a number, got %q", arg)
	}
	return id, nil
}

func commentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <location-id>",
		Short: "List comments on a marker, oldest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			locationID, err := parseLocationID(args[0])
			if err != nil {
				fail(err)
			}

			comments, err := newClient().ListComments(cmd.Context(), locationID)
			if err != nil {
				fail(err)
			}

			if len(comments) == 0 {
				fmt.Println("no comments yet")
				return
			}

			bold := color.New(color.Bold)
			for _, cm := range comments {
				author := "Anonymous"
				if cm.AuthorName != nil {
					author = *cm.AuthorName
				}
				bold.Printf("%s", author)
				fmt.Printf("  %s\n", cm.CreatedAt.Format("2006-01-02 15:04"))
				fmt.Printf("  %s\n", cm.CommentText)
			}
		},
	}
}

func commentsAddCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "add <location-id> <text>...",
		Short: "Add a comment to a marker",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			locationID, err := parseLocationID(args[0])
			if err != nil {
				fail(err)
			}

			sub := mapclient.CommentSubmission{
				LocationID: locationID,
				Text:       strings.Join(args[1:], " "),
			}
			if cmd.Flags().Changed("author") {
				sub.AuthorName = &author
			}

			comment, err := newClient().CreateComment(cmd.Context(), sub)
			if err != nil {
				if errors.Is(err, mapclient.ErrLocationNotFound) {
					fail(fmt.Errorf("marker %d does not exist", locationID))
				}
				fail(err)
			}

			color.Green("added comment #%d", comment.ID)
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "display name for the comment")
	return cmd
}
