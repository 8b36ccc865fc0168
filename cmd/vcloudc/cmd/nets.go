package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// netsCmd represents the nets command
var netsCmd = &cobra.Command{
	Use:     "nets <org>",
	Short:   "List the networks of an org with their address ranges",
	Example: "vcloudc nets Acme",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)
		org, err := c.Org(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		nets, err := c.OrgNets(cmd.Context(), org)
		if err != nil {
			log.Fatal(err)
		}

		for _, n := range nets {
			fmt.Printf("%s\tgateway=%s netmask=%s dns=%s\n", n.Name, n.Gateway, n.Netmask, n.DNS)
			for _, r := range n.Ranges {
				fmt.Println("\t" + r.Label(n.Name))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(netsCmd)
}
