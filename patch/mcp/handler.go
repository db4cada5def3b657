package mcp

import (
	"context"

	patchservice "github.com/viant/csspatch/patch/service"
	"github.com/viant/jsonrpc/transport"
	protoclient "github.com/viant/mcp-protocol/client"
	"github.com/viant/mcp-protocol/logger"
	protoserver "github.com/viant/mcp-protocol/server"
)

// Handler serves the patcher tools over MCP.
type Handler struct {
	*protoserver.DefaultHandler
	service *patchservice.Service
}

func NewHandler(service *patchservice.Service) protoserver.NewHandler {
	return func(_ context.Context, notifier transport.Notifier, logger logger.Logger, clientOperation protoclient.Operations) (protoserver.Handler, error) {
		base := protoserver.NewDefaultHandler(notifier, logger, clientOperation)
		ret := &Handler{DefaultHandler: base, service: service}
		if err := registerTools(base, ret); err != nil {
			return nil, err
		}
		return ret, nil
	}
}
