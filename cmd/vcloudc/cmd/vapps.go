package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// vappsCmd represents the vapps command
var vappsCmd = &cobra.Command{
	Use:     "vapps <org>",
	Short:   "List the vApps of an org across all of its VDCs",
	Example: "vcloudc vapps Acme",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)
		org, err := c.Org(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		vapps, err := c.OrgVapps(cmd.Context(), org)
		if err != nil {
			log.Fatal(err)
		}

		for _, v := range vapps {
			fmt.Printf("%s\t%s\n", v.Name, v.HREF)
		}
	},
}

func init() {
	rootCmd.AddCommand(vappsCmd)
}
