package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/packethost/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vcloudtools/vcloud"
)

var (
	apiRoot string
	logger  log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcloudc",
	Short: "vCloud API client",
}

func newClient(cmd *cobra.Command) *vcloud.Client {
	options := []vcloud.Option{vcloud.Logger(logger)}
	if apiRoot != "" {
		options = append(options, vcloud.Root(apiRoot))
	}

	c, err := vcloud.New(cmd.Context(), options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context, l log.Logger) {
	logger = l
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&apiRoot, "root", "r", "", "vCloud API root URL, defaults to $VCLOUD_API_ROOT")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
