package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptkit/internal/extension"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store a session token issued by the web app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		extension.NewBackground(e.client, e.store, e.bus, e.logger)

		var username string
		e.bus.Subscribe(extension.MsgAuthUpdated, func(_ context.Context, msg extension.Message) error {
			if p, ok := msg.Payload.(extension.AuthUpdatedPayload); ok {
				username = p.Username
			}
			return nil
		})

		err = e.bus.Publish(cmd.Context(), extension.Message{
			Type:    extension.MsgAuthSuccess,
			Payload: extension.AuthSuccessPayload{Token: args[0], Username: loginUsername},
		})
		if errors.Is(err, extension.ErrInvalidToken) {
			return fmt.Errorf("the server rejected this token")
		}
		if err != nil {
			return err
		}

		if username == "" {
			username = "unknown user"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup := extension.NewPopup(e.client, e.store, e.bus, e.logger)
		if err := popup.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

type statusView struct {
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	UserID        string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Username      string `json:"username,omitempty" yaml:"username,omitempty"`
	Server        string `json:"server" yaml:"server"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the stored session is still valid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup := extension.NewPopup(e.client, e.store, e.bus, e.logger)
		ok, err := popup.Init(cmd.Context())
		if err != nil {
			return err
		}

		view := statusView{Authenticated: ok, Server: viper.GetString("api_url")}
		if ok {
			session := popup.Session()
			view.UserID = session.UserID
			view.Username = session.Username
		}
		return output(cmd.OutOrStdout(), view)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "display name to remember with the session")
}
