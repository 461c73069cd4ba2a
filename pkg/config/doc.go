// Package config provides layered, dotted-key configuration for plinth
// applications: embedded defaults, an optional YAML file, and environment
// overrides, resolved in that order.
//
// Lookups never fail. Unknown keys return the zero value of the requested
// type, which keeps call sites free of error plumbing for optional settings:
//
//	cfg, err := config.New(
//	    config.WithDefaults(map[string]any{
//	        "http.trust_proxy":      false,
//	        "http.subdomain_offset": 2,
//	    }),
//	    config.WithFile("config.yml"),
//	    config.WithEnvPrefix("PLINTH_"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	secret := cfg.String("app.key")       // "" if not configured
//	trust := cfg.Bool("http.trust_proxy") // false if not configured
package config
