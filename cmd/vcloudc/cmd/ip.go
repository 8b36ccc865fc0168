package cmd

import (
	"fmt"
	"log"
	"net"

	"github.com/spf13/cobra"
	"inet.af/netaddr"
)

// ipCmd represents the ip command
var ipCmd = &cobra.Command{
	Use:     "ip <addr>...",
	Short:   "Find which org network contains each address",
	Example: "vcloudc ip --org Acme 10.0.0.2 10.0.0.3",
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("requires at least one ip")
		}
		for _, arg := range args {
			if net.ParseIP(arg) == nil {
				return fmt.Errorf("invalid ip: %s", arg)
			}
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		orgName, err := cmd.Flags().GetString("org")
		if err != nil {
			log.Fatal(err)
		}

		c := newClient(cmd)
		org, err := c.Org(cmd.Context(), orgName)
		if err != nil {
			log.Fatal(err)
		}
		nets, err := c.OrgNets(cmd.Context(), org)
		if err != nil {
			log.Fatal(err)
		}

		for _, arg := range args {
			ip, ok := netaddr.FromStdIP(net.ParseIP(arg))
			if !ok {
				log.Fatalf("invalid ip: %s", arg)
			}
			found := false
			for _, n := range nets {
				if n.ContainsIP(ip) {
					fmt.Printf("%s\t%s\n", arg, n.Name)
					found = true
				}
			}
			if !found {
				fmt.Printf("%s\t-\n", arg)
			}
		}
	},
}

func init() {
	ipCmd.Flags().String("org", "", "org whose networks to search")
	ipCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(ipCmd)
}
