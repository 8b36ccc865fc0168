package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// vdcsCmd represents the vdcs command
var vdcsCmd = &cobra.Command{
	Use:     "vdcs <org>",
	Short:   "List the virtual datacenters of an org, capacity included",
	Example: "vcloudc vdcs Acme",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)
		org, err := c.Org(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		vdcs, err := c.OrgVdcs(cmd.Context(), org)
		if err != nil {
			log.Fatal(err)
		}

		b, err := json.MarshalIndent(vdcs, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(b))
	},
}

func init() {
	rootCmd.AddCommand(vdcsCmd)
}
