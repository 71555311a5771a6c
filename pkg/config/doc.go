// Package config provides the configuration of the vrem command.
//
// # Sources
//
// Values are resolved in increasing order of precedence:
//
//   - built-in defaults (NewDefault)
//   - an optional YAML file, with ${VAR_NAME} references expanded
//   - VREM_* environment variables, e.g. VREM_DATABASE_URI
//   - command line flags listed in FlagBindings
//
// # Usage
//
//	cfg, err := config.Load("vrem.yaml", cmd.Flags())
//	if err != nil {
//		return err
//	}
//	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
//
// # Writing a starting configuration
//
//	if err := config.Save("vrem.yaml", config.NewDefault()); err != nil {
//		return err
//	}
//
// A .env file in the working directory is loaded by the command before
// Load runs, so its variables take part in both substitution and
// environment overrides.
package config
