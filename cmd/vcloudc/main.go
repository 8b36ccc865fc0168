package main

import (
	"context"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/packethost/pkg/log"
	"github.com/vcloudtools/vcloud/cmd/vcloudc/cmd"
)

func main() {
	logger, err := log.Init("github.com/vcloudtools/vcloud")
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, otelShutdown := otelinit.InitOpenTelemetry(context.Background(), "vcloudc")
	defer otelShutdown(ctx)

	cmd.Execute(ctx, logger)
}
