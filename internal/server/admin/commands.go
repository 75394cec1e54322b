// Package admin holds the operator commands of cmd/feedadmin: registering
// authors, minting access tokens and uploading avatars.
package admin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/spf13/cobra"
)

// Users is the part of services.UserService the commands drive.
type Users interface {
	Create(ctx context.Context, name, screenName string) (*models.User, error)
	IssueToken(ctx context.Context, userID int64) (string, error)
	SetAvatar(ctx context.Context, userID int64, contentType string, image []byte) (string, error)
}

// seam
var readFile = os.ReadFile

func NewRootCommand(u Users, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "feedadmin",
		Short:         "Manage feed authors",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)

	user := &cobra.Command{Use: "user", Short: "Author accounts"}
	user.AddCommand(addUserCommand(u))

	root.AddCommand(user, tokenCommand(u), avatarCommand(u))
	return root
}

func addUserCommand(u Users) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <screen-name>",
		Short: "Register an author",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := u.Create(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d @%s\n", created.ID, created.ScreenName)
			return nil
		},
	}
}

func tokenCommand(u Users) *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Print an access token for an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			token, err := u.IssueToken(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func avatarCommand(u Users) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "avatar <user-id> <image-file>",
		Short: "Upload an author's avatar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			image, err := readFile(args[1])
			if err != nil {
				return err
			}
			ct := contentType
			if ct == "" {
				ct = http.DetectContentType(image)
			}
			key, err := u.SetAvatar(cmd.Context(), id, ct, image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s, %d bytes)\n", key, ct, len(image))
			return nil
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	return cmd
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
