// Package lingocache implements a multilingual content translation cache
// service for catalog records.
//
// The service sits between API clients and a slow, rate-limited, pay-per-
// character translation provider. Translations are cached durably by a
// content hash of the source text, provider calls for cache misses fan out
// concurrently, and provider trouble degrades to source-language text
// instead of errors.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/kiranahq/lingocache"
//	    "github.com/kiranahq/lingocache/cache"
//	    "github.com/kiranahq/lingocache/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    t := lingocache.NewTranslator(p,
//	        lingocache.WithCache(cache.NewMemoryCache(30*24*time.Hour)),
//	    )
//
//	    rec := &lingocache.Record{
//	        ID:         "PROD-001",
//	        SourceLang: "en",
//	        Fields:     map[string]string{"name": "Basmati Rice 5kg"},
//	    }
//	    out, _ := t.TranslateRecord(context.Background(), rec, "hi")
//	    fmt.Println(out.Fields["name"])
//	}
package lingocache
