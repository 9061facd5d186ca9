// Package searchmcp embeds the Azure AI Search and Azure AI Agent tools in a
// Go program, without running the stdio MCP binaries.
//
// # Direct calls
//
//	client, _ := searchmcp.New(
//	    searchmcp.WithAzureSearch("https://my-svc.search.windows.net", key, "docs"),
//	)
//	results, _ := client.Search().Query(ctx, "refund policy", &searchmcp.SearchOptions{
//	    Mode: searchmcp.ModeHybrid,
//	    Top:  3,
//	})
//
// # Agent-backed search
//
//	cred, _ := azidentity.NewDefaultAzureCredential(nil)
//	client, _ := searchmcp.New(
//	    searchmcp.WithAgentProject(connString, "gpt-4o", cred),
//	    searchmcp.WithAgentTools("search-conn", "bing-conn", "docs"),
//	)
//	answer, _ := client.Agent().WebSearch(ctx, "current weather in Paris")
//
// # Serving MCP from your own process
//
//	server := client.SearchServer()
//	_ = server.Run(ctx, &mcp.StdioTransport{})
package searchmcp
