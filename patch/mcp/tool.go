package mcp

import (
	"context"
	_ "embed"
	"encoding/json"

	patchservice "github.com/viant/csspatch/patch/service"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

//go:embed tools/cssPatchRun.md
var descRun string

func registerTools(base *protoserver.DefaultHandler, h *Handler) error {
	svc := h.service

	if err := protoserver.RegisterTool[*patchservice.RunInput, *patchservice.Report](base.Registry, "cssPatchRun", descRun, func(ctx context.Context, in *patchservice.RunInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := svc.RunTool(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResultOut(svc, out)
	}); err != nil {
		return err
	}
	return nil
}

// buildErrorResult reports a failed run as an InvalidParams JSON-RPC error.
func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

// buildSuccessResultOut returns the report as JSON text, or as structured content when UseData is set.
func buildSuccessResultOut(service *patchservice.Service, payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	if service.UseTextField() {
		b, _ := json.Marshal(payload)
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Type: "text", Text: string(b)}}}, nil
	}
	return &schema.CallToolResult{StructuredContent: map[string]any{"result": payload}}, nil
}
