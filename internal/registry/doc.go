// Package registry loads the QuickCode UI component map.
//
// The component map is an externally hosted document that names every
// installable component together with the URL of its source file, the npm
// packages it needs, the hooks that ship with it and the other components it
// requires. Components are copied into the project as source code the
// developer owns.
//
// # Document Forms
//
// The map is accepted as JSON:
//
//	{
//	  "hookBaseUrl": "https://github.com/iamsufiyan560/QuickCode/blob/main/hooks/",
//	  "components": {
//	    "Card": {
//	      "url": "https://github.com/iamsufiyan560/QuickCode/blob/main/ui/Card.tsx",
//	      "deps": {"clsx": "^2.1.1"},
//	      "requires": ["Button"],
//	      "hooks": []
//	    }
//	  }
//	}
//
// or as the ES module the upstream project publishes, which exports
// HOOK_BASE_URL and a components object literal:
//
//	export const HOOK_BASE_URL = "https://github.com/.../hooks/";
//	export const components = {
//	  Card: { url: "...", deps: {}, requires: ["Button"], hooks: [] },
//	};
//
// # Fetching
//
// A Fetcher retrieves a single document. HTTPFetcher, S3Fetcher and
// FileFetcher cover http(s)://, s3:// and file:// URLs; MuxFetcher dispatches
// between them. GitHub blob URLs are rewritten to raw.githubusercontent.com
// before they are fetched.
//
// # Usage
//
//	fetcher := registry.NewMuxFetcher(registry.FetcherOptions{Timeout: 30 * time.Second})
//	reg, err := registry.Load(ctx, fetcher, cfg.Registry)
//	if err != nil {
//	    return err
//	}
//	key, comp, ok := reg.Lookup("button")
package registry
