package cmd

import (
	"fmt"
	"log"

	"github.com/packethost/pkg/env"
	"github.com/spf13/cobra"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:     "login <username>",
	Short:   "Retrieve an auth token using a username and password",
	Long:    "The password is read from $VCLOUD_PASSWORD. On success the session token is printed, suitable for $VCLOUD_AUTH_TOKEN.",
	Example: "vcloudc login admin@System",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password := env.Get("VCLOUD_PASSWORD")
		if password == "" {
			log.Fatal("VCLOUD_PASSWORD missing from environment")
		}

		c := newClient(cmd)
		if err := c.Login(cmd.Context(), args[0], password); err != nil {
			log.Fatal(err)
		}
		fmt.Println(c.Token())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
