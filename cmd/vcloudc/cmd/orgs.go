package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// orgsCmd represents the orgs command
var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List all orgs visible to the session",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)
		list, err := c.OrgList(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		for _, org := range list.Orgs {
			fmt.Printf("%s\t%s\n", org.Name, org.HREF)
		}
	},
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
