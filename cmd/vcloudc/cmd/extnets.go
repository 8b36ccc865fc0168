package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// extnetsCmd represents the extnets command
var extnetsCmd = &cobra.Command{
	Use:     "extnets [name]",
	Short:   "List external networks, or fetch one by name",
	Example: "vcloudc extnets backbone",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient(cmd)

		if len(args) == 1 {
			net, err := c.ExtNet(cmd.Context(), args[0])
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s\t%s\n", net.Name, net.HREF)
			fmt.Println(string(net.Config))
			return
		}

		list, err := c.ExtNetList(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		for _, net := range list.ExtNets {
			fmt.Printf("%s\t%s\n", net.Name, net.HREF)
		}
	},
}

func init() {
	rootCmd.AddCommand(extnetsCmd)
}
