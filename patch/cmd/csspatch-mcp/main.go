package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	flags "github.com/jessevdk/go-flags"
	patchmcp "github.com/viant/csspatch/patch/mcp"
	patchservice "github.com/viant/csspatch/patch/service"
	"github.com/viant/mcp-protocol/authorization"
	oauthmeta "github.com/viant/mcp-protocol/oauth2/meta"
	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"
	serverauth "github.com/viant/mcp/server/auth"
	"github.com/viant/scy"
	"github.com/viant/scy/auth/flow"
	"github.com/viant/scy/cred"
	_ "github.com/viant/scy/kms/blowfish"
)

// Options defines CLI flags for the CSS patch MCP server.
type Options struct {
	HTTPAddr     string `short:"a" long:"addr" default:":7791" description:"HTTP listen address"`
	Base         string `short:"b" long:"base" description:"AFS base URL that table paths resolve against (default: working directory)"`
	Table        string `short:"t" long:"table" description:"AFS URL of a YAML patch table replacing the compiled-in one"`
	UseData      bool   `long:"use-data" description:"return tool results as structured content instead of text"`
	Verbose      bool   `short:"v" long:"verbose" description:"log rule application details"`
	Oauth2Config string `short:"o" long:"oauth2config" description:"Path to JSON OAuth2 configuration file (scy EncodedResource)"`
	UseIdToken   bool   `short:"i" long:"use-id-token" description:"Use ID token (instead of access token) for identity scoping"`
}

func main() {
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		os.Exit(2)
	}

	svc := patchservice.NewService(&patchservice.Config{
		BaseURL: strings.TrimRight(strings.TrimSpace(opts.Base), "/"),
		UseData: opts.UseData,
		Verbose: opts.Verbose,
	})
	if v := strings.TrimSpace(opts.Table); v != "" {
		spec, err := patchservice.LoadSpec(context.Background(), svc.Storage(), v)
		if err != nil {
			log.Fatalf("failed to load patch table: %v", err)
		}
		svc.SetSpec(spec)
	}

	options := []mcpsrv.Option{
		mcpsrv.WithImplementation(schema.Implementation{Name: "csspatch-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(patchmcp.NewHandler(svc)),
		mcpsrv.WithEndpointAddress(opts.HTTPAddr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	}

	authOptions, err := authorizationOptions(context.Background(), opts.Oauth2Config, opts.UseIdToken)
	if err != nil {
		log.Fatal(err)
	}
	if len(authOptions) == 0 {
		log.Printf("warning: no --oauth2config supplied; cssPatchRun is reachable without authorization on %s", opts.HTTPAddr)
	}
	options = append(options, authOptions...)

	server, err := mcpsrv.New(options...)
	if err != nil {
		log.Fatal(err)
	}
	// Enable streamable HTTP so /mcp endpoint is active
	server.UseStreamableHTTP(true)
	if err := server.HTTP(context.Background(), opts.HTTPAddr).ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// authorizationOptions protects /mcp with server-level OAuth2 when a scy
// EncodedResource is supplied; cssPatchRun rewrites files.
func authorizationOptions(ctx context.Context, oauth2ConfigRef string, useIdToken bool) ([]mcpsrv.Option, error) {
	v := strings.TrimSpace(oauth2ConfigRef)
	if v == "" {
		return nil, nil
	}
	res := scy.EncodedResource(v).Decode(ctx, cred.Oauth2Config{})
	sec, err := scy.New().Load(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("failed to load oauth2config: %w", err)
	}
	oauth2Config, ok := sec.Target.(*cred.Oauth2Config)
	if !ok {
		return nil, fmt.Errorf("invalid oauth2config secret type %T", sec.Target)
	}
	authPolicy := &authorization.Policy{
		Global: &authorization.Authorization{UseIdToken: useIdToken, ProtectedResourceMetadata: &oauthmeta.ProtectedResourceMetadata{
			AuthorizationServers: []string{oauth2Config.Config.Endpoint.AuthURL},
		}},
	}
	bff := &serverauth.BackendForFrontend{Client: &oauth2Config.Config, AuthorizationExchangeHeader: flow.AuthorizationExchangeHeader}
	authSvc, err := serverauth.New(&serverauth.Config{BackendForFrontend: bff, Policy: authPolicy})
	if err != nil {
		return nil, fmt.Errorf("failed to init auth service: %w", err)
	}
	return []mcpsrv.Option{
		mcpsrv.WithAuthorizer(authSvc.Middleware),
		mcpsrv.WithProtectedResourcesHandler(authSvc.ProtectedResourcesHandler),
	}, nil
}
