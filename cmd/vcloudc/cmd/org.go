package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// orgCmd represents the org command
var orgCmd = &cobra.Command{
	Use:     "org <name>",
	Short:   "Get the full representation of an org by name",
	Example: "vcloudc org Acme",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)
		org, err := c.Org(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		b, err := json.MarshalIndent(org, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(b))
	},
}

func init() {
	rootCmd.AddCommand(orgCmd)
}
