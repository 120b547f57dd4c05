// Package langcache provides an HTTP client for the LangCache semantic-cache
// API and the probe helpers used by the shadow pipeline.
//
// The Client exposes the full API surface (health, search, entry insert,
// entry delete, bulk delete) with explicit error returns. The Probe and Store
// helpers wrap Search and AddEntry with the shadow-mode semantics: failures
// are swallowed and reported as a miss, never surfaced to the caller.
//
// Usage:
//
//	client, err := langcache.New(langcache.Config{
//		BaseURL: "https://api.langcache.com",
//		APIKey:  os.Getenv("LANGCACHE_API_KEY"),
//		CacheID: os.Getenv("LANGCACHE_CACHE_ID"),
//		Timeout: 10 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	matches, err := client.Search(ctx, langcache.SearchRequest{Prompt: "hello"})
package langcache
