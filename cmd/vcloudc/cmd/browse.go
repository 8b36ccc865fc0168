package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:     "browse [path]",
	Short:   "GET an arbitrary API path and print the raw response",
	Example: "vcloudc browse /org",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}

		c := newClient(cmd)
		body, err := c.Browse(cmd.Context(), path)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(body))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
